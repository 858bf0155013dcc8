package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
)

// StartDeliveryCommandHandler moves an order to in_transit and logs the pickup.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewStartDeliveryCommandHandler(uowFactory UoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = checkAssignedDriver(o, cmd.DriverID()); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = o.StartDelivery(now); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = logDeliveryMessage(ctx, uow, o, "Started delivery to "+o.Route().DeliveryAddress, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// CompleteDeliveryResult identifies the invoice and confirmation task created
// with the delivery.
type CompleteDeliveryResult struct {
	InvoiceID     kernel.ID
	InvoiceNumber kernel.DocumentNumber
	TaskID        kernel.ID
}

// CompleteDeliveryCommandHandler marks an order delivered. The same
// transaction issues exactly one invoice due in invoice.DefaultDueDays and
// enqueues a send_email task for the secretary, so a delivered order never
// exists without both.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (CompleteDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}
	if err = checkAssignedDriver(o, cmd.DriverID()); err != nil {
		return CompleteDeliveryResult{}, err
	}

	now := time.Now().UTC()
	if err = o.CompleteDelivery(cmd.Proof(), now); err != nil {
		return CompleteDeliveryResult{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return CompleteDeliveryResult{}, err
	}

	inv, err := invoice.NewInvoice(o.CustomerID(), o.ID(), o.TotalPrice(), invoice.DefaultDueDays, now)
	if err != nil {
		return CompleteDeliveryResult{}, err
	}
	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return CompleteDeliveryResult{}, err
	}

	orderID, customerID := o.ID(), o.CustomerID()
	t, err := task.NewTask(task.Spec{
		Title:   "Send delivery confirmation for order " + o.Number().String(),
		Type:    task.SendEmail,
		Related: task.Related{OrderID: &orderID, CustomerID: &customerID},
	}, now)
	if err != nil {
		return CompleteDeliveryResult{}, err
	}
	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return CompleteDeliveryResult{}, err
	}

	body := "Delivery completed."
	if cmd.Notes() != "" {
		body = "Delivery completed. Notes: " + cmd.Notes()
	}
	if err = logDeliveryMessage(ctx, uow, o, body, now); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	return CompleteDeliveryResult{
		InvoiceID:     inv.ID(),
		InvoiceNumber: inv.Number(),
		TaskID:        t.ID(),
	}, nil
}

// logDeliveryMessage appends a driver-to-system notice about the order.
func logDeliveryMessage(ctx context.Context, uow MessageRepoFactory, o *order.Order, body string, at time.Time) error {
	sender := message.SystemSender
	if o.DriverID() != nil {
		sender = message.Driver(*o.DriverID())
	}

	orderID := o.ID()
	msg, err := message.NewMessage(&orderID, sender, message.SystemSender, body, message.System, at)
	if err != nil {
		return err
	}
	return uow.MessageRepository().Add(ctx, msg)
}
