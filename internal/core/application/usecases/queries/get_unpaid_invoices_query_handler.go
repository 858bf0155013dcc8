package queries

import (
	"context"
	"math"

	"logistics/internal/core/domain/model/invoice"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetUnpaidInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewGetUnpaidInvoicesQueryHandler(db *gorm.DB) GetUnpaidInvoicesQueryHandler {
	return GetUnpaidInvoicesQueryHandler{db: db}
}

func (h GetUnpaidInvoicesQueryHandler) Handle(
	ctx context.Context,
	query GetUnpaidInvoicesQuery,
) (GetUnpaidInvoicesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnpaidInvoicesQueryResponse{}, err
	}

	statuses := make([]string, 0, len(invoice.UnpaidStatuses))
	for _, s := range invoice.UnpaidStatuses {
		statuses = append(statuses, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+invoiceColumns+`
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.status = ANY(?::text::text[])
		ORDER BY i.due_date ASC, i.id ASC
	`, pq.Array(statuses)).Rows()
	if err != nil {
		return GetUnpaidInvoicesQueryResponse{}, err
	}
	defer rows.Close()

	response := GetUnpaidInvoicesQueryResponse{Invoices: make([]InvoiceView, 0)}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return GetUnpaidInvoicesQueryResponse{}, err
		}
		response.Invoices = append(response.Invoices, inv)
		response.Outstanding += inv.Total
	}

	if err = rows.Err(); err != nil {
		return GetUnpaidInvoicesQueryResponse{}, err
	}

	response.Outstanding = math.Round(response.Outstanding*100) / 100
	return response, nil
}
