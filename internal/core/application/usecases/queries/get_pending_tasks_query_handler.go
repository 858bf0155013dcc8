package queries

import (
	"context"

	"logistics/internal/core/domain/model/task"

	"gorm.io/gorm"
)

type GetPendingTasksQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingTasksQueryHandler(db *gorm.DB) GetPendingTasksQueryHandler {
	return GetPendingTasksQueryHandler{db: db}
}

func (h GetPendingTasksQueryHandler) Handle(ctx context.Context, query GetPendingTasksQuery) ([]TaskView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.status = ?`
	args := []any{task.Pending.String()}
	if role := query.Role(); role != nil {
		sql += ` AND t.assigned_to = ?`
		args = append(args, role.String())
	}
	sql += ` ORDER BY t.deadline ASC, t.id ASC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]TaskView, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
