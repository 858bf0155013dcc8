package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/task"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "logistics/workflow"

var (
	// ErrNoHandler is returned for a task whose type no role registered.
	ErrNoHandler = errors.New("no handler registered for task type")
	// ErrRolePanicked wraps a panic recovered from a role batch.
	ErrRolePanicked = errors.New("role batch panicked")
)

// Config tunes the dispatcher.
type Config struct {
	// AutoAcknowledge completes Done and Skipped tasks after handling.
	// Disabled, every task stays pending until acknowledged externally.
	AutoAcknowledge bool
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithTracerProvider traces cycles with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) {
		d.tracer = tp.Tracer(tracerName)
	}
}

// CycleReport counts what happened during one poll cycle.
type CycleReport struct {
	Pending  int
	Done     int
	Skipped  int
	Deferred int
	Failed   int
}

func (r *CycleReport) add(o Outcome) {
	switch o {
	case Done:
		r.Done++
	case Skipped:
		r.Skipped++
	case Deferred:
		r.Deferred++
	}
}

// Dispatcher polls pending tasks and routes them to role handlers.
// RunCycle must not be called concurrently with itself; the dispatcher job
// skips a tick while the previous cycle is still running.
type Dispatcher struct {
	tasks  commands.TaskUoWFactory
	ack    commands.CompleteTaskCommandHandler
	config Config
	logger *slog.Logger
	tracer trace.Tracer

	mu       sync.RWMutex
	handlers map[task.Type]TaskHandler
}

func NewDispatcher(tasks commands.TaskUoWFactory, logger *slog.Logger, config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tasks:    tasks,
		ack:      commands.NewCompleteTaskCommandHandler(tasks),
		config:   config,
		logger:   logger.With("component", "dispatcher"),
		tracer:   otel.Tracer(tracerName),
		handlers: make(map[task.Type]TaskHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register binds a handler to a task type, replacing any earlier one.
func (d *Dispatcher) Register(taskType task.Type, handler TaskHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[taskType] = handler
}

// RegisterRole registers every handler of a role.
func (d *Dispatcher) RegisterRole(role RoleHandlers) {
	for taskType, handler := range role.Handlers() {
		if taskType.Owner() != role.Role() {
			d.logger.Warn("handler registered outside its role",
				"task_type", taskType.String(), "role", role.Role().String())
		}
		d.Register(taskType, handler)
	}
}

// RunCycle handles every pending task once. Roles run one after another in
// the order of task.Roles; a role whose batch fails is logged and the cycle
// moves on. The returned error is non-nil only when the queue could not be
// read.
func (d *Dispatcher) RunCycle(ctx context.Context) (CycleReport, error) {
	ctx, span := d.tracer.Start(ctx, "workflow.cycle")
	defer span.End()

	var report CycleReport

	pending, err := d.tasks.Create().TaskRepository().ListPending(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list pending tasks")
		return report, fmt.Errorf("list pending tasks: %w", err)
	}
	report.Pending = len(pending)
	span.SetAttributes(attribute.Int("tasks.pending", len(pending)))
	if len(pending) == 0 {
		return report, nil
	}

	batches := groupByRole(pending)
	for _, role := range task.Roles() {
		batch, ok := batches[role]
		if !ok {
			continue
		}
		if err = d.runRole(ctx, role, batch, &report); err != nil {
			d.logger.ErrorContext(ctx, "role batch failed", "role", role.String(), "error", err)
		}
	}

	span.SetAttributes(
		attribute.Int("tasks.done", report.Done),
		attribute.Int("tasks.skipped", report.Skipped),
		attribute.Int("tasks.deferred", report.Deferred),
		attribute.Int("tasks.failed", report.Failed),
	)
	span.SetStatus(codes.Ok, "")

	d.logger.DebugContext(ctx, "cycle finished",
		"pending", report.Pending,
		"done", report.Done,
		"skipped", report.Skipped,
		"deferred", report.Deferred,
		"failed", report.Failed,
	)
	return report, nil
}

// groupByRole keeps the deadline order of the queue inside every role.
func groupByRole(tasks []*task.Task) map[task.Role][]*task.Task {
	batches := make(map[task.Role][]*task.Task)
	for _, t := range tasks {
		batches[t.Role()] = append(batches[t.Role()], t)
	}
	return batches
}

func (d *Dispatcher) runRole(ctx context.Context, role task.Role, batch []*task.Task, report *CycleReport) (err error) {
	ctx, span := d.tracer.Start(ctx, "workflow.role", trace.WithAttributes(
		attribute.String("role", role.String()),
		attribute.Int("tasks", len(batch)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			report.Failed++
			err = fmt.Errorf("%w: %v", ErrRolePanicked, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}()

	var failures []error
	for _, t := range batch {
		if ctx.Err() != nil {
			return errors.Join(append(failures, ctx.Err())...)
		}

		outcome, handleErr := d.handle(ctx, t)
		if handleErr != nil {
			report.Failed++
			failures = append(failures, fmt.Errorf("task %d (%s): %w", t.ID(), t.Type(), handleErr))
			d.logger.ErrorContext(ctx, "task failed",
				"task_id", t.ID().Int64(), "task_type", t.Type().String(), "error", handleErr)
			continue
		}

		report.add(outcome)
		d.logger.InfoContext(ctx, "task handled",
			"task_id", t.ID().Int64(),
			"task_type", t.Type().String(),
			"role", role.String(),
			"priority", t.Priority().String(),
			"outcome", outcome.String(),
		)

		if d.config.AutoAcknowledge && outcome.Acknowledges() {
			if ackErr := d.acknowledge(ctx, t); ackErr != nil {
				failures = append(failures, ackErr)
				d.logger.ErrorContext(ctx, "task acknowledge failed", "task_id", t.ID().Int64(), "error", ackErr)
			}
		}
	}
	return errors.Join(failures...)
}

func (d *Dispatcher) handle(ctx context.Context, t *task.Task) (Outcome, error) {
	d.mu.RLock()
	handler, ok := d.handlers[t.Type()]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoHandler, t.Type())
	}
	return handler.Handle(ctx, t)
}

func (d *Dispatcher) acknowledge(ctx context.Context, t *task.Task) error {
	cmd, err := commands.NewCompleteTaskCommand(t.ID())
	if err != nil {
		return err
	}
	if _, err = d.ack.Handle(ctx, cmd); err != nil && !errors.Is(err, task.ErrTaskAlreadyCompleted) {
		return fmt.Errorf("acknowledge task %d: %w", t.ID(), err)
	}
	return nil
}
