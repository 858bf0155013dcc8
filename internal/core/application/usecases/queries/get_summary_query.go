package queries

import (
	"errors"
	"time"

	"logistics/internal/pkg/guard"
)

var ErrGetSummaryQueryIsNotConstructed = errors.New(
	"GetSummaryQuery must be created via NewGetSummaryQuery constructor",
)

// GetSummaryQuery computes the back-office dashboard counters as of now.
type GetSummaryQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetSummaryQuery(now time.Time) GetSummaryQuery {
	return GetSummaryQuery{now: now, guard: guard.NewConstructorGuard()}
}

func (q GetSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetSummaryQueryIsNotConstructed)
}

func (q GetSummaryQuery) Now() time.Time { return q.now }

// GetSummaryQueryResponse holds the dashboard counters.
//
// Overdue orders are undelivered orders past their deadline; overdue invoices
// are unpaid invoices due before the start of the current day.
type GetSummaryQueryResponse struct {
	PendingOrders   int
	InTransitOrders int
	OverdueOrders   int
	UnpaidInvoices  int
	OverdueInvoices int
	ActiveDrivers   int
}
