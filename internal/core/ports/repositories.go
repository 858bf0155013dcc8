// Package ports defines the contracts between the logistics domain and its
// infrastructure: repositories, the unit of work and the outbound messenger.
package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
)

// CustomerRepository persists customers. Customers are never updated.
type CustomerRepository interface {
	// Add stores a new customer and assigns its id.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get returns errs.ObjectNotFoundError when the customer does not exist.
	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)

	// FindByEmail returns errs.ObjectNotFoundError when no customer has the email.
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)

	// FindByPhone returns errs.ObjectNotFoundError when no customer has the phone.
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add stores a new order and assigns its id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the current state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get with the row locked until the transaction ends.
	// Read-modify-write sequences must use it inside a unit of work.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// ListByStatus returns orders in the status, earliest deadline first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// ListByDriver returns the orders assigned to a driver, earliest deadline first.
	ListByDriver(ctx context.Context, driverID kernel.ID) ([]*order.Order, error)

	// ListOverdue returns undelivered orders whose deadline lies before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountDeliveredByDriver counts the delivered orders of a driver.
	CountDeliveredByDriver(ctx context.Context, driverID kernel.ID) (int, error)
}

// DriverRepository persists drivers.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.ID) (*driver.Driver, error)
	GetForUpdate(ctx context.Context, id kernel.ID) (*driver.Driver, error)

	// ListActive returns online drivers ordered by name.
	ListActive(ctx context.Context) ([]*driver.Driver, error)
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	Add(ctx context.Context, aggregate *invoice.Invoice) error
	Get(ctx context.Context, id kernel.ID) (*invoice.Invoice, error)

	// ListByOrder returns every invoice issued for the order.
	ListByOrder(ctx context.Context, orderID kernel.ID) ([]*invoice.Invoice, error)

	// ListUnpaid returns sent, viewed and overdue invoices by due date.
	ListUnpaid(ctx context.Context) ([]*invoice.Invoice, error)

	// ListOverdue returns unpaid invoices due before the day of now. A non-nil
	// customerID restricts the result to that customer.
	ListOverdue(ctx context.Context, now time.Time, customerID *kernel.ID) ([]*invoice.Invoice, error)
}

// MessageRepository is the append-only communication log.
type MessageRepository interface {
	Add(ctx context.Context, aggregate *message.Message) error

	// ListByOrder returns the messages about an order, newest first.
	ListByOrder(ctx context.Context, orderID kernel.ID) ([]*message.Message, error)
}

// TaskRepository is the persistent work queue.
type TaskRepository interface {
	// Add enqueues a task and assigns its id.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update stores the current state of an existing task.
	Update(ctx context.Context, aggregate *task.Task) error

	Get(ctx context.Context, id kernel.ID) (*task.Task, error)
	GetForUpdate(ctx context.Context, id kernel.ID) (*task.Task, error)

	// ListPending returns pending tasks ordered by deadline. A non-nil role
	// restricts the result to that role.
	ListPending(ctx context.Context, role *task.Role) ([]*task.Task, error)
}
