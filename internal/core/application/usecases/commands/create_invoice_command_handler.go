package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/invoice"
)

// CreateInvoiceCommandHandler issues an invoice for an order under the
// configured DedupPolicy. The order row is locked so two concurrent requests
// under DedupPerOrder cannot both pass the check.
type CreateInvoiceCommandHandler struct {
	uowFactory UoWFactory
	policy     DedupPolicy
}

func NewCreateInvoiceCommandHandler(uowFactory UoWFactory, policy DedupPolicy) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns ErrInvoiceExists when DedupPerOrder finds an earlier invoice.
func (h CreateInvoiceCommandHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) (*invoice.Invoice, error) {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	invoiceRepo := uow.InvoiceRepository()
	if h.policy == DedupPerOrder {
		existing, err := invoiceRepo.ListByOrder(ctx, o.ID())
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, fmt.Errorf("%w: order %s, invoice %s", ErrInvoiceExists, o.Number(), existing[0].Number())
		}
	}

	inv, err := invoice.NewInvoice(o.CustomerID(), o.ID(), o.TotalPrice(), cmd.DueDays(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
