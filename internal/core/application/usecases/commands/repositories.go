// Package commands contains business operations that modify system state.
// Every command follows the same pattern: validation in the constructor, one
// transaction per Handle call, and persistence through the unit of work.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks for the narrowest one that covers the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// TaskUoW manages transactions that only touch the task queue.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
	}

	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// MessageUoW manages transactions that only append to the message log.
	MessageUoW interface {
		TxManager
		MessageRepoFactory
	}

	MessageUoWFactory interface {
		Create() MessageUoW
	}

	// DriverUoW manages transactions that only touch drivers.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW manages transactions spanning several aggregate types, such as a
	// delivery completion that writes the order, an invoice, a task and a
	// message at once.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate o, enqueue follow-up tasks
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		DriverRepoFactory
		InvoiceRepoFactory
		MessageRepoFactory
		TaskRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
