package driverrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{db: db, tracker: tracker}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return table.Classify(err, "driver", nil)
	}
	if err := aggregate.MarkPersisted(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status, location and last activity of a driver.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	updated, err := table.Update(ctx, r.db, table.Drivers, dto.ID, table.Fields{
		"status":           dto.Status,
		"current_location": dto.CurrentLocation,
		"last_active":      dto.LastActive,
	})
	if err != nil {
		return table.Classify(err, "driver", dto.ID)
	}
	if !updated {
		return errs.NewObjectNotFoundError("driver", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.ID) (*driver.Driver, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormDriverRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*driver.Driver, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// ListActive returns online drivers ordered by name, then id.
func (r *GormDriverRepository) ListActive(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", driver.Online.String()).
		Order("name ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r *GormDriverRepository) get(ctx context.Context, db *gorm.DB, id kernel.ID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, table.Classify(err, "driver", id.Int64())
	}
	return toDomain(dto)
}
