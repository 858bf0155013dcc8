package customerrepo

import (
	"context"
	"strings"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{db: db, tracker: tracker}
}

// Add saves a new customer and assigns the generated id.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return table.Classify(err, "customer", nil)
	}
	if err := aggregate.MarkPersisted(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id, "id = ?", id.Int64())
}

// FindByEmail matches case-insensitively; emails are stored lower-cased.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.first(ctx, email, "email = ? AND email <> ''", email)
}

func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	phone = strings.TrimSpace(phone)
	return r.first(ctx, phone, "phone = ?", phone)
}

func (r *GormCustomerRepository) first(ctx context.Context, key any, query string, args ...any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id").First(&dto).Error; err != nil {
		return nil, table.Classify(err, "customer", key)
	}
	return toDomain(dto)
}
