package taskrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements ports.TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{db: db, tracker: tracker}
}

// Add enqueues a task and assigns the generated id.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id, err := table.Insert(ctx, r.db, table.Tasks, insertFields(aggregate))
	if err != nil {
		return table.Classify(err, "task", nil)
	}
	if err = aggregate.MarkPersisted(kernel.ID(id)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the queue state of a task.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	updated, err := table.Update(ctx, r.db, table.Tasks, aggregate.ID().Int64(), updateFields(aggregate))
	if err != nil {
		return table.Classify(err, "task", aggregate.ID().Int64())
	}
	if !updated {
		return errs.NewObjectNotFoundError("task", aggregate.ID().Int64())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTaskRepository) Get(ctx context.Context, id kernel.ID) (*task.Task, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormTaskRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*task.Task, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// ListPending returns pending tasks by deadline, then id.
func (r *GormTaskRepository) ListPending(ctx context.Context, role *task.Role) ([]*task.Task, error) {
	q := r.db.WithContext(ctx).Where("status = ?", task.Pending.String())
	if role != nil {
		if err := role.Validate(); err != nil {
			return nil, err
		}
		q = q.Where("assigned_to = ?", role.String())
	}

	var dtos []TaskDTO
	if err := q.Order("deadline ASC, id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *GormTaskRepository) get(ctx context.Context, db *gorm.DB, id kernel.ID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, table.Classify(err, "task", id.Int64())
	}
	return toDomain(dto)
}
