package messagerepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"

	"gorm.io/gorm"
)

// GormMessageRepository implements ports.MessageRepository using GORM.
type GormMessageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormMessageRepository(db *gorm.DB, tracker aggregateTracker) *GormMessageRepository {
	return &GormMessageRepository{db: db, tracker: tracker}
}

// Add appends a message to the log.
func (r *GormMessageRepository) Add(ctx context.Context, aggregate *message.Message) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id, err := table.Insert(ctx, r.db, table.Messages, fields(aggregate))
	if err != nil {
		return table.Classify(err, "message", nil)
	}
	if err = aggregate.MarkPersisted(kernel.ID(id)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListByOrder returns the messages of an order, newest first.
func (r *GormMessageRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*message.Message, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Int64()).
		Order("sent_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*message.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
