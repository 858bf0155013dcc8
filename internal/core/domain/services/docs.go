// Package services provides domain services that coordinate business rules
// spanning several aggregates of the logistics domain.
//
// The package includes:
//   - DriverAssigner: picks the driver for a pending order and performs the assignment
//   - WageCalculator: derives a driver's wage from delivered orders
package services
