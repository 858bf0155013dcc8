package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/task"
)

// Secretary writes to customers: order confirmations, thank-you notes after
// delivery and contract notices.
type Secretary struct {
	reader commands.UoWFactory
	out    outbound
	logger *slog.Logger
}

func NewSecretary(reader commands.UoWFactory, send commands.SendMessageCommandHandler, logger *slog.Logger) *Secretary {
	return &Secretary{
		reader: reader,
		out:    outbound{send: send},
		logger: logger.With("component", "secretary"),
	}
}

func (s *Secretary) Role() task.Role { return task.Secretary }

func (s *Secretary) Handlers() map[task.Type]TaskHandler {
	return map[task.Type]TaskHandler{
		task.SendEmail:         TaskHandlerFunc(s.sendConfirmation),
		task.SendThankYouEmail: TaskHandlerFunc(s.sendThankYou),
		task.PrepareContract:   TaskHandlerFunc(s.prepareContract),
	}
}

func (s *Secretary) sendConfirmation(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := s.reader.Create()
	o, err := loadOrder(ctx, uow, t.Related().OrderID)
	if err != nil || o == nil {
		return Skipped, err
	}
	c, err := customerOf(ctx, uow, t.Related().CustomerID, o)
	if err != nil || c == nil {
		return Skipped, err
	}

	orderID := o.ID()
	body := fmt.Sprintf(
		"Dear %s,\n\nthank you for your order %s.\n\nPickup: %s\nDelivery: %s\nPrice: EUR %.2f\n\n"+
			"Your driver will be in touch shortly.",
		c.Contact().Name, o.Number(), o.Route().PickupAddress, o.Route().DeliveryAddress, o.TotalPrice(),
	)
	if err = s.out.notify(ctx, &orderID, message.Customer(c.ID()), message.Email,
		fmt.Sprintf("Order %s confirmed", o.Number()), body); err != nil {
		return 0, err
	}
	return Done, nil
}

func (s *Secretary) sendThankYou(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := s.reader.Create()
	o, err := loadOrder(ctx, uow, t.Related().OrderID)
	if err != nil || o == nil {
		return Skipped, err
	}
	c, err := customerOf(ctx, uow, t.Related().CustomerID, o)
	if err != nil || c == nil {
		return Skipped, err
	}

	orderID := o.ID()
	body := fmt.Sprintf("Dear %s,\n\nyour order %s has been delivered. Thank you for shipping with us.",
		c.Contact().Name, o.Number())
	if err = s.out.notify(ctx, &orderID, message.Customer(c.ID()), message.Email,
		"Thank you for your order", body); err != nil {
		return 0, err
	}
	return Done, nil
}

func (s *Secretary) prepareContract(ctx context.Context, t *task.Task) (Outcome, error) {
	c, err := loadCustomer(ctx, s.reader.Create(), t.Related().CustomerID)
	if err != nil || c == nil {
		return Skipped, err
	}

	party := c.CompanyName()
	if party == "" {
		party = c.Contact().Name
	}
	body := fmt.Sprintf("Dear %s,\n\nyour framework contract for %s is prepared and will follow for signature.",
		c.Contact().Name, party)
	if err = s.out.notify(ctx, t.Related().OrderID, message.Customer(c.ID()), message.Email,
		"Your contract", body); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "contract prepared", "customer_id", c.ID().Int64(), "party", party)
	return Done, nil
}
