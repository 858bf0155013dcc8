package workflow

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/task"
)

// Escalation surfaces critical tasks to a human. It never completes them:
// an escalation stays pending until someone acknowledges it.
type Escalation struct {
	logger *slog.Logger
}

func NewEscalation(logger *slog.Logger) *Escalation {
	return &Escalation{logger: logger.With("component", "escalation")}
}

func (e *Escalation) Role() task.Role { return task.Dispatcher }

func (e *Escalation) Handlers() map[task.Type]TaskHandler {
	return map[task.Type]TaskHandler{
		task.Escalate: TaskHandlerFunc(e.escalate),
	}
}

func (e *Escalation) escalate(ctx context.Context, t *task.Task) (Outcome, error) {
	e.logger.WarnContext(ctx, "escalation awaiting decision",
		"task_id", t.ID().Int64(),
		"title", t.Title(),
		"priority", t.Priority().String(),
		"order_id", rawID(t.Related().OrderID),
		"deadline", t.Deadline(),
	)
	return Deferred, nil
}

func rawID(id *kernel.ID) any {
	if id == nil {
		return nil
	}
	return id.Int64()
}
