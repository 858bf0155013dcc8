package invoicerepo

import (
	"context"
	"time"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, tracker: tracker}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return table.Classify(err, "invoice", dto.InvoiceNumber)
	}
	if err := aggregate.MarkPersisted(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.ID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, table.Classify(err, "invoice", id.Int64())
	}
	return toDomain(dto)
}

func (r *GormInvoiceRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, r.db.Where("order_id = ?", orderID.Int64()))
}

func (r *GormInvoiceRepository) ListUnpaid(ctx context.Context) ([]*invoice.Invoice, error) {
	return r.list(ctx, r.db.Where("status = ANY(?::text::text[])", unpaidStatuses()))
}

// ListOverdue compares due dates against the start of the day of now.
func (r *GormInvoiceRepository) ListOverdue(
	ctx context.Context,
	now time.Time,
	customerID *kernel.ID,
) ([]*invoice.Invoice, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	q := r.db.Where("due_date < ? AND status <> ?", today, invoice.Paid.String())
	if customerID != nil {
		q = q.Where("customer_id = ?", customerID.Int64())
	}
	return r.list(ctx, q)
}

func (r *GormInvoiceRepository) list(ctx context.Context, q *gorm.DB) ([]*invoice.Invoice, error) {
	var dtos []InvoiceDTO
	if err := q.WithContext(ctx).Order("due_date ASC, id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func unpaidStatuses() any {
	names := make([]string, 0, len(invoice.UnpaidStatuses))
	for _, s := range invoice.UnpaidStatuses {
		names = append(names, s.String())
	}
	return pq.Array(names)
}
