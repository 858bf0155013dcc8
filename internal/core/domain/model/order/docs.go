// Package order provides the Order aggregate and its delivery state machine.
//
// The package includes:
//   - Order: the aggregate root carrying route, pricing, deadline, driver
//     assignment and proof of delivery
//   - Status: the state machine Pending -> Assigned -> InTransit -> Delivered
//
// Key business rules:
//   - Orders are numbered ORD-YYYYMMDD-XXXXXXXX at creation
//   - Total price equals the base price (no surcharges)
//   - A driver is referenced iff the status is Assigned, InTransit or Delivered
//   - There are no backward transitions and no cancellation
//   - Overdue is a predicate (not delivered and past deadline), never a status
package order
