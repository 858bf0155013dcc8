// Package kernel provides the value objects shared by every aggregate of the
// logistics core.
//
// The package includes:
//   - ID: the opaque positive integer identity assigned by the store
//   - DocumentNumber: human-readable order and invoice numbers
//     (ORD-YYYYMMDD-XXXXXXXX, INV-YYYYMMDD-XXXXXX)
//
// Value objects are immutable and validate on construction.
package kernel
