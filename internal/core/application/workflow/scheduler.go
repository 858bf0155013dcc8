package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// Scheduler assigns drivers, reminds them of the day's work and watches for
// overdue orders.
type Scheduler struct {
	reader  commands.UoWFactory
	assign  commands.AssignDriverCommandHandler
	enqueue commands.CreateTaskCommandHandler
	out     outbound
	logger  *slog.Logger
}

func NewScheduler(
	reader commands.UoWFactory,
	assign commands.AssignDriverCommandHandler,
	enqueue commands.CreateTaskCommandHandler,
	send commands.SendMessageCommandHandler,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		reader:  reader,
		assign:  assign,
		enqueue: enqueue,
		out:     outbound{send: send},
		logger:  logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Role() task.Role { return task.Scheduler }

func (s *Scheduler) Handlers() map[task.Type]TaskHandler {
	return map[task.Type]TaskHandler{
		task.AssignDriver:      TaskHandlerFunc(s.assignDriver),
		task.SendDailyReminder: TaskHandlerFunc(s.sendDailyReminder),
		task.CheckOverdue:      TaskHandlerFunc(s.checkOverdue),
	}
}

// assignDriver is safe to repeat: an order that already left pending is
// skipped, and without online drivers the task waits for the next cycle.
func (s *Scheduler) assignDriver(ctx context.Context, t *task.Task) (Outcome, error) {
	if t.Related().OrderID == nil {
		return Skipped, nil
	}
	cmd, err := commands.NewAssignDriverCommand(*t.Related().OrderID)
	if err != nil {
		return 0, err
	}

	result, err := s.assign.Handle(ctx, cmd)
	switch {
	case errors.Is(err, services.ErrNoActiveDrivers):
		s.logger.WarnContext(ctx, "no drivers available", "order_id", cmd.OrderID().Int64())
		return Deferred, nil
	case errors.Is(err, commands.ErrOrderNotPending), errors.Is(err, errs.ErrObjectNotFound):
		s.logger.InfoContext(ctx, "assignment skipped", "order_id", cmd.OrderID().Int64(), "reason", err.Error())
		return Skipped, nil
	case err != nil:
		return 0, err
	}

	s.logger.InfoContext(ctx, "driver assigned",
		"order_id", cmd.OrderID().Int64(),
		"driver_id", result.DriverID.Int64(),
		"notify_task_id", result.TaskID.Int64(),
	)
	return Done, nil
}

func (s *Scheduler) sendDailyReminder(ctx context.Context, _ *task.Task) (Outcome, error) {
	uow := s.reader.Create()
	drivers, err := uow.DriverRepository().ListActive(ctx)
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, d := range drivers {
		orders, err := uow.OrderRepository().ListByDriver(ctx, d.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		open := 0
		for _, o := range orders {
			if o.Status() != order.Delivered {
				open++
			}
		}

		body := fmt.Sprintf("Good morning %s, you have %d open orders today.", d.Name(), open)
		if err = s.out.notify(ctx, nil, message.Driver(d.ID()), message.SMS, "Daily reminder", body); err != nil {
			failures = append(failures, err)
		}
	}
	if err = errors.Join(failures...); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "daily reminder sent", "drivers", len(drivers))
	return Done, nil
}

// checkOverdue raises one critical escalation per overdue order. Repeated
// checks raise repeated escalations.
func (s *Scheduler) checkOverdue(ctx context.Context, _ *task.Task) (Outcome, error) {
	now := time.Now().UTC()
	overdue, err := s.reader.Create().OrderRepository().ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, o := range overdue {
		orderID, customerID := o.ID(), o.CustomerID()
		cmd, err := commands.NewCreateTaskCommand(task.Spec{
			Title:    fmt.Sprintf("URGENT: Order %s overdue by %s", o.Number(), formatOverdue(o.OverdueBy(now))),
			Type:     task.Escalate,
			Role:     task.Dispatcher,
			Priority: task.Critical,
			Related: task.Related{
				OrderID:    &orderID,
				CustomerID: &customerID,
				DriverID:   copyID(o.DriverID()),
			},
		})
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if _, err = s.enqueue.Handle(ctx, cmd); err != nil {
			failures = append(failures, err)
		}
	}
	if err = errors.Join(failures...); err != nil {
		return 0, err
	}

	if len(overdue) > 0 {
		s.logger.WarnContext(ctx, "overdue orders detected", "orders", len(overdue))
	}
	return Done, nil
}

// formatOverdue renders whole minutes below an hour and whole hours above.
func formatOverdue(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return fmt.Sprintf("%dh", int(d/time.Hour))
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
