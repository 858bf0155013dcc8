package invoice

import (
	"errors"
	"fmt"
	"math"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	// VATRate is the tax rate included in every order total.
	VATRate = 0.19
	// DefaultDueDays is used when an invoice is issued without payment terms.
	DefaultDueDays = 30
	// MaxDueDays bounds the payment terms.
	MaxDueDays = 365
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Amounts is the monetary breakdown of an invoice. Subtotal + Tax == Total.
type Amounts struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// SplitGross derives net subtotal and tax from a gross total. The values are
// kept exact; use RoundCents when presenting them.
func SplitGross(total float64) Amounts {
	subtotal := total / (1 + VATRate)
	return Amounts{
		Subtotal: subtotal,
		Tax:      total - subtotal,
		Total:    total,
	}
}

// RoundCents rounds an amount half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Invoice is the aggregate root of a bill for one order.
type Invoice struct {
	id         kernel.ID
	number     kernel.DocumentNumber
	customerID kernel.ID
	orderID    kernel.ID
	amounts    Amounts
	issueDate  time.Time
	dueDate    time.Time
	status     Status

	guard guard.ConstructorGuard
}

// NewInvoice issues a Draft invoice for the gross total of an order. A zero
// dueDays falls back to DefaultDueDays.
func NewInvoice(customerID, orderID kernel.ID, total float64, dueDays int, now time.Time) (*Invoice, error) {
	if dueDays == 0 {
		dueDays = DefaultDueDays
	}

	var err error
	if e := customerID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("customer id", e))
	}
	if e := orderID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("order id", e))
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%v is not a finite amount", total)))
	} else if total < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%.2f is negative", total)))
	}
	if dueDays < 0 || dueDays > MaxDueDays {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("due days", dueDays, 0, MaxDueDays))
	}
	if err != nil {
		return nil, err
	}

	return &Invoice{
		number:     kernel.NewInvoiceNumber(now),
		customerID: customerID,
		orderID:    orderID,
		amounts:    SplitGross(total),
		issueDate:  now,
		dueDate:    now.AddDate(0, 0, dueDays),
		status:     Draft,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the full persisted state of an invoice.
type Snapshot struct {
	ID         kernel.ID
	Number     string
	CustomerID kernel.ID
	OrderID    kernel.ID
	Amounts    Amounts
	IssueDate  time.Time
	DueDate    time.Time
	Status     Status
}

func RestoreInvoice(s Snapshot) (*Invoice, error) {
	number, err := kernel.ParseDocumentNumber(s.Number)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		number:     number,
		customerID: s.CustomerID,
		orderID:    s.OrderID,
		amounts:    s.Amounts,
		issueDate:  s.IssueDate,
		dueDate:    s.DueDate,
		status:     s.Status,
		guard:      guard.NewConstructorGuard(),
	}
	if err = errors.Join(inv.MarkPersisted(s.ID), s.Status.Validate()); err != nil {
		return nil, err
	}
	return inv, nil
}

func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

func (i *Invoice) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) ID() kernel.ID                 { return i.id }
func (i *Invoice) Number() kernel.DocumentNumber { return i.number }
func (i *Invoice) CustomerID() kernel.ID         { return i.customerID }
func (i *Invoice) OrderID() kernel.ID            { return i.orderID }
func (i *Invoice) Amounts() Amounts              { return i.amounts }
func (i *Invoice) Subtotal() float64             { return i.amounts.Subtotal }
func (i *Invoice) Tax() float64                  { return i.amounts.Tax }
func (i *Invoice) Total() float64                { return i.amounts.Total }
func (i *Invoice) IssueDate() time.Time          { return i.issueDate }
func (i *Invoice) DueDate() time.Time            { return i.dueDate }
func (i *Invoice) Status() Status                { return i.status }

// IsOverdue reports whether the due date lies before the day of now and the
// invoice is not paid.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.status == Paid {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return i.dueDate.Before(today)
}
