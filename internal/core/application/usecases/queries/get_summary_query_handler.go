package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetSummaryQueryHandler(db *gorm.DB) GetSummaryQueryHandler {
	return GetSummaryQueryHandler{db: db}
}

// Handle computes all counters in a single statement so they describe the
// same snapshot.
func (h GetSummaryQueryHandler) Handle(ctx context.Context, query GetSummaryQuery) (GetSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSummaryQueryResponse{}, err
	}

	now := query.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	unpaid := make([]string, 0, len(invoice.UnpaidStatuses))
	for _, s := range invoice.UnpaidStatuses {
		unpaid = append(unpaid, s.String())
	}

	var row struct {
		PendingOrders   int
		InTransitOrders int
		OverdueOrders   int
		UnpaidInvoices  int
		OverdueInvoices int
		ActiveDrivers   int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = @pending)                              AS pending_orders,
			(SELECT COUNT(*) FROM orders WHERE status = @in_transit)                           AS in_transit_orders,
			(SELECT COUNT(*) FROM orders WHERE status <> @delivered AND deadline < @now)       AS overdue_orders,
			(SELECT COUNT(*) FROM invoices WHERE status = ANY(@unpaid::text::text[]))          AS unpaid_invoices,
			(SELECT COUNT(*) FROM invoices WHERE status <> @paid AND due_date < @start_of_day) AS overdue_invoices,
			(SELECT COUNT(*) FROM drivers WHERE status = @online)                              AS active_drivers
	`, map[string]any{
		"pending":      order.Pending.String(),
		"in_transit":   order.InTransit.String(),
		"delivered":    order.Delivered.String(),
		"now":          now,
		"unpaid":       pq.Array(unpaid),
		"paid":         invoice.Paid.String(),
		"start_of_day": startOfDay,
		"online":       driver.Online.String(),
	}).Scan(&row).Error
	if err != nil {
		return GetSummaryQueryResponse{}, err
	}

	return GetSummaryQueryResponse(row), nil
}
