package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/domain/services"
)

// AssignDriverResult names the chosen driver and the notify_driver task
// enqueued for comms.
type AssignDriverResult struct {
	DriverID kernel.ID
	TaskID   kernel.ID
}

// AssignDriverCommandHandler runs the assignment with the order row locked, so
// two concurrent runs for the same order cannot both assign it.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoActiveDrivers):
//	    // nothing was written; try again on the next cycle
//	case errors.Is(err, ErrOrderNotPending):
//	    // already assigned by an earlier delivery of the same task
//	case err != nil:
//	    return err
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	assigner   services.DriverAssigner
}

func NewAssignDriverCommandHandler(uowFactory UoWFactory, assigner services.DriverAssigner) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle returns ErrOrderNotPending when the order left Pending and
// services.ErrNoActiveDrivers when nobody is online. Neither case writes.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (AssignDriverResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignDriverResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignDriverResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return AssignDriverResult{}, err
	}
	if o.Status() != order.Pending {
		return AssignDriverResult{}, fmt.Errorf("%w: %s is %s", ErrOrderNotPending, o.Number(), o.Status())
	}

	drivers, err := uow.DriverRepository().ListActive(ctx)
	if err != nil {
		return AssignDriverResult{}, err
	}

	now := time.Now().UTC()
	selected, err := h.assigner.Assign(o, drivers, now)
	if err != nil {
		return AssignDriverResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AssignDriverResult{}, err
	}

	orderID, customerID, driverID := o.ID(), o.CustomerID(), selected.ID()
	t, err := task.NewTask(task.Spec{
		Title:    fmt.Sprintf("Notify %s about order %s", selected.Name(), o.Number()),
		Type:     task.NotifyDriver,
		Related:  task.Related{OrderID: &orderID, CustomerID: &customerID, DriverID: &driverID},
		Priority: task.High,
	}, now)
	if err != nil {
		return AssignDriverResult{}, err
	}
	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return AssignDriverResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignDriverResult{}, err
	}

	return AssignDriverResult{DriverID: driverID, TaskID: t.ID()}, nil
}
