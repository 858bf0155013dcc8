package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// Accounting issues invoices, chases overdue payments and computes wages.
type Accounting struct {
	reader   commands.UoWFactory
	invoices commands.CreateInvoiceCommandHandler
	out      outbound
	wages    services.WageCalculator
	logger   *slog.Logger
}

func NewAccounting(
	reader commands.UoWFactory,
	invoices commands.CreateInvoiceCommandHandler,
	send commands.SendMessageCommandHandler,
	wages services.WageCalculator,
	logger *slog.Logger,
) *Accounting {
	return &Accounting{
		reader:   reader,
		invoices: invoices,
		out:      outbound{send: send},
		wages:    wages,
		logger:   logger.With("component", "accounting"),
	}
}

func (a *Accounting) Role() task.Role { return task.Accounting }

func (a *Accounting) Handlers() map[task.Type]TaskHandler {
	return map[task.Type]TaskHandler{
		task.CreateInvoice:       TaskHandlerFunc(a.createInvoice),
		task.SendPaymentReminder: TaskHandlerFunc(a.sendPaymentReminders),
		task.CalculateDriverWage: TaskHandlerFunc(a.calculateWage),
	}
}

func (a *Accounting) createInvoice(ctx context.Context, t *task.Task) (Outcome, error) {
	if t.Related().OrderID == nil {
		return Skipped, nil
	}
	cmd, err := commands.NewCreateInvoiceCommand(*t.Related().OrderID, 0)
	if err != nil {
		return 0, err
	}

	inv, err := a.invoices.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrInvoiceExists), errors.Is(err, errs.ErrObjectNotFound):
		a.logger.InfoContext(ctx, "invoice not created", "order_id", cmd.OrderID().Int64(), "reason", err.Error())
		return Skipped, nil
	case err != nil:
		return 0, err
	}

	a.logger.InfoContext(ctx, "invoice created",
		"invoice_id", inv.ID().Int64(), "invoice_number", inv.Number().String(), "total", inv.Total())
	return Done, nil
}

// sendPaymentReminders reminds the customer of every overdue invoice, or only
// the referenced customer when the task names one.
func (a *Accounting) sendPaymentReminders(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := a.reader.Create()
	now := time.Now().UTC()

	overdue, err := uow.InvoiceRepository().ListOverdue(ctx, now, t.Related().CustomerID)
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, inv := range overdue {
		customerID := inv.CustomerID()
		c, err := loadCustomer(ctx, uow, &customerID)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if c == nil {
			continue
		}

		orderID := inv.OrderID()
		body := fmt.Sprintf(
			"Dear %s,\n\ninvoice %s over EUR %.2f was due on %s. Please transfer the amount at your earliest convenience.",
			c.Contact().Name, inv.Number(), inv.Total(), inv.DueDate().Format(time.DateOnly),
		)
		if err = a.out.notify(ctx, &orderID, message.Customer(c.ID()), message.Email,
			fmt.Sprintf("Payment reminder for invoice %s", inv.Number()), body); err != nil {
			failures = append(failures, err)
		}
	}
	if err = errors.Join(failures...); err != nil {
		return 0, err
	}

	a.logger.InfoContext(ctx, "payment reminders sent", "invoices", len(overdue))
	return Done, nil
}

func (a *Accounting) calculateWage(ctx context.Context, t *task.Task) (Outcome, error) {
	uow := a.reader.Create()
	d, err := loadDriver(ctx, uow, t.Related().DriverID)
	if err != nil || d == nil {
		return Skipped, err
	}

	delivered, err := uow.OrderRepository().CountDeliveredByDriver(ctx, d.ID())
	if err != nil {
		return 0, err
	}

	a.logger.InfoContext(ctx, "driver wage calculated",
		"driver_id", d.ID().Int64(),
		"driver", d.Name(),
		"deliveries", delivered,
		"wage", a.wages.Calculate(delivered),
	)
	return Done, nil
}
