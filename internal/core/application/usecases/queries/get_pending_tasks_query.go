package queries

import (
	"errors"

	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/guard"
)

var ErrGetPendingTasksQueryIsNotConstructed = errors.New(
	"GetPendingTasksQuery must be created via NewGetPendingTasksQuery constructor",
)

// GetPendingTasksQuery lists the open work queue, earliest deadline first.
// A nil role lists every role.
type GetPendingTasksQuery struct {
	role *task.Role

	guard guard.ConstructorGuard
}

func NewGetPendingTasksQuery(role *task.Role) (GetPendingTasksQuery, error) {
	if role != nil {
		if err := role.Validate(); err != nil {
			return GetPendingTasksQuery{}, err
		}
	}
	return GetPendingTasksQuery{role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTasksQueryIsNotConstructed)
}

func (q GetPendingTasksQuery) Role() *task.Role { return q.role }
