package commands

import "errors"

var (
	// ErrOrderNotPending is returned when assigning an order that already left Pending.
	ErrOrderNotPending = errors.New("order is not pending")
	// ErrDriverMismatch is returned when a driver acts on an order assigned to someone else.
	ErrDriverMismatch = errors.New("order is assigned to another driver")
	// ErrInvoiceExists is returned by the per_order dedup policy.
	ErrInvoiceExists = errors.New("order already has an invoice")
)
