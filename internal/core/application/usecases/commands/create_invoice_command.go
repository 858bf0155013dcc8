package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// DedupPolicy decides whether an order may be invoiced more than once.
type DedupPolicy int

const (
	// DedupNone issues a new invoice on every request.
	DedupNone DedupPolicy = iota
	// DedupPerOrder refuses to invoice an order that already has an invoice.
	DedupPerOrder
)

var dedupPolicyNames = map[DedupPolicy]string{
	DedupNone:     "none",
	DedupPerOrder: "per_order",
}

// ParseDedupPolicy accepts "none" and "per_order". An empty string means DedupNone.
func ParseDedupPolicy(raw string) (DedupPolicy, error) {
	if raw == "" {
		return DedupNone, nil
	}
	for p, name := range dedupPolicyNames {
		if name == raw {
			return p, nil
		}
	}
	return DedupNone, errs.NewValueIsInvalidErrorWithCause("invoice dedup policy", fmt.Errorf("unknown policy %q", raw))
}

func (p DedupPolicy) String() string {
	if name, ok := dedupPolicyNames[p]; ok {
		return name
	}
	return "unknown"
}

// CreateInvoiceCommand bills the total of an order. Zero dueDays means
// invoice.DefaultDueDays.
type CreateInvoiceCommand struct {
	orderID kernel.ID
	dueDays int

	guard guard.ConstructorGuard
}

func NewCreateInvoiceCommand(orderID kernel.ID, dueDays int) (CreateInvoiceCommand, error) {
	err := orderID.Validate()
	if dueDays < 0 || dueDays > invoice.MaxDueDays {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("due days", dueDays, 0, invoice.MaxDueDays))
	}
	if err != nil {
		return CreateInvoiceCommand{}, err
	}
	return CreateInvoiceCommand{orderID: orderID, dueDays: dueDays, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

func (c CreateInvoiceCommand) OrderID() kernel.ID { return c.orderID }
func (c CreateInvoiceCommand) DueDays() int       { return c.dueDays }
