// Package taskrepo persists the task queue.
package taskrepo

import (
	"time"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/task"
)

// TaskDTO is the row of the tasks table. Pending tasks are read by
// status and deadline, hence the composite index.
type TaskDTO struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	Title             string    `gorm:"size:300;not null"`
	TaskType          string    `gorm:"size:50;not null"`
	AssignedTo        string    `gorm:"size:20;not null;index"`
	RelatedOrderID    *int64    `gorm:"index"`
	RelatedCustomerID *int64    `gorm:"index"`
	RelatedDriverID   *int64    `gorm:"index"`
	Priority          string    `gorm:"size:20;not null"`
	Deadline          time.Time `gorm:"not null;index:idx_tasks_status_deadline,priority:2"`
	Status            string    `gorm:"size:20;not null;index:idx_tasks_status_deadline,priority:1"`
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (TaskDTO) TableName() string {
	return "tasks"
}

func insertFields(t *task.Task) table.Fields {
	return table.Fields{
		"title":               t.Title(),
		"task_type":           t.Type().String(),
		"assigned_to":         t.Role().String(),
		"related_order_id":    kernel.RawOptionalID(t.Related().OrderID),
		"related_customer_id": kernel.RawOptionalID(t.Related().CustomerID),
		"related_driver_id":   kernel.RawOptionalID(t.Related().DriverID),
		"priority":            t.Priority().String(),
		"deadline":            t.Deadline(),
		"status":              t.Status().String(),
		"completed_at":        t.CompletedAt(),
		"created_at":          t.CreatedAt(),
	}
}

func updateFields(t *task.Task) table.Fields {
	return table.Fields{
		"status":       t.Status().String(),
		"completed_at": t.CompletedAt(),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	taskType, err := task.ParseType(dto.TaskType)
	if err != nil {
		return nil, err
	}
	role, err := task.ParseRole(dto.AssignedTo)
	if err != nil {
		return nil, err
	}
	priority, err := task.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return task.RestoreTask(task.Snapshot{
		ID:    kernel.ID(dto.ID),
		Title: dto.Title,
		Type:  taskType,
		Role:  role,
		Related: task.Related{
			OrderID:    kernel.OptionalID(dto.RelatedOrderID),
			CustomerID: kernel.OptionalID(dto.RelatedCustomerID),
			DriverID:   kernel.OptionalID(dto.RelatedDriverID),
		},
		Priority:    priority,
		Deadline:    dto.Deadline,
		Status:      status,
		CreatedAt:   dto.CreatedAt,
		CompletedAt: dto.CompletedAt,
	})
}
