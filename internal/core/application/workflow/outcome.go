package workflow

import (
	"context"

	"logistics/internal/core/domain/model/task"
)

// Outcome is the result of handling a single task.
type Outcome int

const (
	// Done means the work was carried out.
	Done Outcome = iota + 1
	// Skipped means the work no longer applies, e.g. a related entity is gone.
	Skipped
	// Deferred means the work cannot progress yet and the task stays pending.
	Deferred
)

var outcomeNames = map[Outcome]string{
	Done:     "done",
	Skipped:  "skipped",
	Deferred: "deferred",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Acknowledges reports whether the task should be completed after this outcome.
func (o Outcome) Acknowledges() bool {
	return o == Done || o == Skipped
}

// TaskHandler carries out one task type.
type TaskHandler interface {
	Handle(ctx context.Context, t *task.Task) (Outcome, error)
}

// TaskHandlerFunc adapts a function to TaskHandler.
type TaskHandlerFunc func(ctx context.Context, t *task.Task) (Outcome, error)

func (f TaskHandlerFunc) Handle(ctx context.Context, t *task.Task) (Outcome, error) {
	return f(ctx, t)
}

// RoleHandlers is the handler set of one role.
type RoleHandlers interface {
	Role() task.Role
	Handlers() map[task.Type]TaskHandler
}
