package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/task"
)

// Comms keeps customers and drivers informed about their orders.
type Comms struct {
	reader commands.UoWFactory
	out    outbound
	logger *slog.Logger
}

func NewComms(reader commands.UoWFactory, send commands.SendMessageCommandHandler, logger *slog.Logger) *Comms {
	return &Comms{
		reader: reader,
		out:    outbound{send: send},
		logger: logger.With("component", "comms"),
	}
}

func (c *Comms) Role() task.Role { return task.Comms }

func (c *Comms) Handlers() map[task.Type]TaskHandler {
	return map[task.Type]TaskHandler{
		task.NotifyCustomer:   TaskHandlerFunc(c.notifyCustomer),
		task.NotifyDriver:     TaskHandlerFunc(c.notifyDriver),
		task.SendStatusUpdate: TaskHandlerFunc(c.sendStatusUpdate),
	}
}

func (c *Comms) notifyCustomer(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := c.reader.Create()
	o, err := loadOrder(ctx, uow, t.Related().OrderID)
	if err != nil || o == nil {
		return Skipped, err
	}
	cust, err := customerOf(ctx, uow, t.Related().CustomerID, o)
	if err != nil || cust == nil {
		return Skipped, err
	}

	orderID := o.ID()
	body := fmt.Sprintf("Update for order %s: status = %s", o.Number(), o.Status())
	if err = c.out.notify(ctx, &orderID, message.Customer(cust.ID()), message.SMS,
		fmt.Sprintf("Order %s", o.Number()), body); err != nil {
		return 0, err
	}
	return Done, nil
}

func (c *Comms) notifyDriver(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := c.reader.Create()
	o, err := loadOrder(ctx, uow, t.Related().OrderID)
	if err != nil || o == nil {
		return Skipped, err
	}
	driverID := t.Related().DriverID
	if driverID == nil {
		driverID = o.DriverID()
	}
	d, err := loadDriver(ctx, uow, driverID)
	if err != nil || d == nil {
		return Skipped, err
	}

	orderID := o.ID()
	body := fmt.Sprintf("New order %s, pickup: %s", o.Number(), o.Route().PickupAddress)
	if err = c.out.notify(ctx, &orderID, message.Driver(d.ID()), message.WhatsApp,
		fmt.Sprintf("Order %s", o.Number()), body); err != nil {
		return 0, err
	}
	return Done, nil
}

func (c *Comms) sendStatusUpdate(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := c.reader.Create()
	o, err := loadOrder(ctx, uow, t.Related().OrderID)
	if err != nil || o == nil {
		return Skipped, err
	}
	cust, err := customerOf(ctx, uow, t.Related().CustomerID, o)
	if err != nil || cust == nil {
		return Skipped, err
	}

	orderID := o.ID()
	body := fmt.Sprintf("Dear %s,\n\nyour order %s is now %s. Expected delivery by %s.",
		cust.Contact().Name, o.Number(), o.Status(), o.Deadline().Format("2006-01-02 15:04 MST"))
	if err = c.out.notify(ctx, &orderID, message.Customer(cust.ID()), message.Email,
		fmt.Sprintf("Status update for order %s", o.Number()), body); err != nil {
		return 0, err
	}

	c.logger.InfoContext(ctx, "status update sent", "order_id", o.ID().Int64(), "status", o.Status().String())
	return Done, nil
}
