package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetUnpaidInvoicesQueryIsNotConstructed = errors.New(
	"GetUnpaidInvoicesQuery must be created via NewGetUnpaidInvoicesQuery constructor",
)

// GetUnpaidInvoicesQuery lists sent, viewed and overdue invoices by due date.
type GetUnpaidInvoicesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnpaidInvoicesQuery() GetUnpaidInvoicesQuery {
	return GetUnpaidInvoicesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnpaidInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrGetUnpaidInvoicesQueryIsNotConstructed)
}

// GetUnpaidInvoicesQueryResponse carries the invoices and the sum of their totals.
type GetUnpaidInvoicesQueryResponse struct {
	Invoices    []InvoiceView
	Outstanding float64
}
