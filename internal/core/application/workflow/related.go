package workflow

import (
	"context"
	"errors"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// Loaders return nil without error when the reference is empty or the row is
// gone; the caller then skips the task.

func loadOrder(ctx context.Context, uow commands.UoW, id *kernel.ID) (*order.Order, error) {
	if id == nil {
		return nil, nil
	}
	o, err := uow.OrderRepository().Get(ctx, *id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return o, err
}

func loadCustomer(ctx context.Context, uow commands.UoW, id *kernel.ID) (*customer.Customer, error) {
	if id == nil {
		return nil, nil
	}
	c, err := uow.CustomerRepository().Get(ctx, *id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return c, err
}

func loadDriver(ctx context.Context, uow commands.UoW, id *kernel.ID) (*driver.Driver, error) {
	if id == nil {
		return nil, nil
	}
	d, err := uow.DriverRepository().Get(ctx, *id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return d, err
}

// customerOf prefers the customer referenced by the task and falls back to
// the order's customer.
func customerOf(ctx context.Context, uow commands.UoW, related *kernel.ID, o *order.Order) (*customer.Customer, error) {
	if related == nil && o != nil {
		id := o.CustomerID()
		related = &id
	}
	return loadCustomer(ctx, uow, related)
}

// outbound publishes a message from the system and logs it.
type outbound struct {
	send commands.SendMessageCommandHandler
}

func (o outbound) notify(
	ctx context.Context,
	orderID *kernel.ID,
	recipient message.Party,
	channel message.Channel,
	subject, body string,
) error {
	cmd, err := commands.NewSendMessageCommand(orderID, message.SystemSender, recipient, channel, subject, body)
	if err != nil {
		return err
	}
	_, err = o.send.Handle(ctx, cmd)
	return err
}
