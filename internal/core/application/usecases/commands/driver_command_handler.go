package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
)

// UpdateDriverStatusCommandHandler stores a status change reported by a driver.
type UpdateDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewUpdateDriverStatusCommandHandler(uowFactory DriverUoWFactory) UpdateDriverStatusCommandHandler {
	return UpdateDriverStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateDriverStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDriverStatusCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()
	d, err := repo.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if err = d.UpdateStatus(cmd.Status(), cmd.Location(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// DriverLoginResult is the authenticated driver with their orders.
type DriverLoginResult struct {
	Driver *driver.Driver
	Orders []*order.Order
}

// DriverLoginCommandHandler verifies the phone and brings the driver online.
// A wrong phone yields driver.ErrPhoneMismatch and changes nothing.
type DriverLoginCommandHandler struct {
	uowFactory UoWFactory
}

func NewDriverLoginCommandHandler(uowFactory UoWFactory) DriverLoginCommandHandler {
	return DriverLoginCommandHandler{uowFactory: uowFactory}
}

func (h DriverLoginCommandHandler) Handle(ctx context.Context, cmd DriverLoginCommand) (DriverLoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return DriverLoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DriverLoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return DriverLoginResult{}, err
	}
	if err = d.VerifyPhone(cmd.Phone()); err != nil {
		return DriverLoginResult{}, err
	}

	if err = d.UpdateStatus(driver.Online, "", time.Now().UTC()); err != nil {
		return DriverLoginResult{}, err
	}
	if err = driverRepo.Update(ctx, d); err != nil {
		return DriverLoginResult{}, err
	}

	orders, err := uow.OrderRepository().ListByDriver(ctx, d.ID())
	if err != nil {
		return DriverLoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DriverLoginResult{}, err
	}
	return DriverLoginResult{Driver: d, Orders: orders}, nil
}

// PostDriverUpdateCommandHandler logs a driver's progress report and asks
// comms to pass it on to the customer.
type PostDriverUpdateCommandHandler struct {
	uowFactory UoWFactory
}

func NewPostDriverUpdateCommandHandler(uowFactory UoWFactory) PostDriverUpdateCommandHandler {
	return PostDriverUpdateCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the enqueued notify_customer task.
func (h PostDriverUpdateCommandHandler) Handle(ctx context.Context, cmd PostDriverUpdateCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	if err = checkAssignedDriver(o, cmd.DriverID()); err != nil {
		return 0, err
	}

	driverID := cmd.DriverID()
	if driverID == nil {
		driverID = o.DriverID()
	}

	now := time.Now().UTC()
	orderID, customerID := o.ID(), o.CustomerID()

	sender := message.SystemSender
	if driverID != nil {
		sender = message.Driver(*driverID)
	}
	msg, err := message.NewMessage(&orderID, sender, message.Customer(customerID), cmd.Body(), message.SMS, now)
	if err != nil {
		return 0, err
	}
	if err = uow.MessageRepository().Add(ctx, msg); err != nil {
		return 0, err
	}

	if driverID != nil && cmd.Location() != "" {
		driverRepo := uow.DriverRepository()
		d, err := driverRepo.GetForUpdate(ctx, *driverID)
		if err != nil {
			return 0, err
		}
		if err = d.UpdateStatus(driver.OnDelivery, cmd.Location(), now); err != nil {
			return 0, err
		}
		if err = driverRepo.Update(ctx, d); err != nil {
			return 0, err
		}
	}

	t, err := task.NewTask(task.Spec{
		Title:    "Notify customer: " + cmd.Body(),
		Type:     task.NotifyCustomer,
		Related:  task.Related{OrderID: &orderID, CustomerID: &customerID, DriverID: driverID},
		Priority: task.High,
	}, now)
	if err != nil {
		return 0, err
	}
	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return t.ID(), nil
}
