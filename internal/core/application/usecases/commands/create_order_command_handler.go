package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// CreateOrderResult identifies what CreateOrderCommandHandler stored.
type CreateOrderResult struct {
	OrderID     kernel.ID
	OrderNumber kernel.DocumentNumber
	CustomerID  kernel.ID
	TaskID      kernel.ID
}

// CreateOrderCommandHandler stores the order together with an assign_driver
// task for the scheduler, so the order enters the workflow in the same
// transaction that creates it.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := h.findOrRegisterCustomer(ctx, uow.CustomerRepository(), cmd, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(c.ID(), cmd.Route(), cmd.Price(), cmd.Deadline(), cmd.Parcel(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	orderID, customerID := o.ID(), c.ID()
	t, err := task.NewTask(task.Spec{
		Title:    "Assign driver for order " + o.Number().String(),
		Type:     task.AssignDriver,
		Related:  task.Related{OrderID: &orderID, CustomerID: &customerID},
		Priority: task.High,
	}, now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		CustomerID:  c.ID(),
		TaskID:      t.ID(),
	}, nil
}

// findOrRegisterCustomer matches by email. The phone is only used when the
// order carries no email, so a new email always registers a new customer.
func (h CreateOrderCommandHandler) findOrRegisterCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	cmd CreateOrderCommand,
	now time.Time,
) (*customer.Customer, error) {
	var (
		c   *customer.Customer
		err error
	)
	if email := strings.ToLower(strings.TrimSpace(cmd.Contact().Email)); email != "" {
		c, err = repo.FindByEmail(ctx, email)
	} else {
		c, err = repo.FindByPhone(ctx, strings.TrimSpace(cmd.Contact().Phone))
	}
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	c, err = customer.NewCustomer(cmd.Contact(), cmd.Address(), cmd.CompanyName(), now)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
