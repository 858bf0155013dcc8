// Package queries contains read-only operations backed by raw SQL. Queries
// bypass the aggregates and scan rows straight into read models.
package queries

import (
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
)

// OrderView is the read model of an order row.
type OrderView struct {
	ID                kernel.ID
	Number            string
	CustomerID        kernel.ID
	PickupAddress     string
	DeliveryAddress   string
	ParcelDescription string
	WeightKg          float64
	BasePrice         float64
	TotalPrice        float64
	Status            order.Status
	Deadline          time.Time
	DriverID          *kernel.ID
	AssignedAt        *time.Time
	PickupTime        *time.Time
	DeliveryTime      *time.Time
	PhotoPath         string
	SignaturePath     string
	CreatedAt         time.Time
}

const orderColumns = `
	o.id, o.order_number, o.customer_id, o.pickup_address, o.delivery_address,
	COALESCE(o.parcel_description, ''), COALESCE(o.weight_kg, 0), o.base_price, o.total_price,
	o.status, o.deadline, o.assigned_driver_id, o.assigned_at, o.pickup_time, o.delivery_time,
	COALESCE(o.photo_path, ''), COALESCE(o.signature_path, ''), o.created_at`

func scanOrder(rows *sql.Rows) (OrderView, error) {
	var (
		v        OrderView
		id       int64
		customer int64
		status   string
		driverID *int64
	)
	err := rows.Scan(
		&id, &v.Number, &customer, &v.PickupAddress, &v.DeliveryAddress,
		&v.ParcelDescription, &v.WeightKg, &v.BasePrice, &v.TotalPrice,
		&status, &v.Deadline, &driverID, &v.AssignedAt, &v.PickupTime, &v.DeliveryTime,
		&v.PhotoPath, &v.SignaturePath, &v.CreatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if v.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	v.ID = kernel.ID(id)
	v.CustomerID = kernel.ID(customer)
	v.DriverID = kernel.OptionalID(driverID)
	return v, nil
}

// DriverView is the read model of a driver row.
type DriverView struct {
	ID              kernel.ID
	Name            string
	Phone           string
	Status          driver.Status
	CurrentLocation string
	LastActive      *time.Time
}

const driverColumns = `d.id, d.name, d.phone, d.status, COALESCE(d.current_location, ''), d.last_active`

func scanDriver(rows *sql.Rows) (DriverView, error) {
	var (
		v      DriverView
		id     int64
		status string
	)
	err := rows.Scan(&id, &v.Name, &v.Phone, &status, &v.CurrentLocation, &v.LastActive)
	if err != nil {
		return DriverView{}, err
	}
	if v.Status, err = driver.ParseStatus(status); err != nil {
		return DriverView{}, err
	}
	v.ID = kernel.ID(id)
	return v, nil
}

// MessageView is the read model of a logged message.
type MessageView struct {
	ID       kernel.ID
	OrderID  *kernel.ID
	Sender   message.Party
	Receiver message.Party
	Body     string
	Channel  message.Channel
	SentAt   time.Time
}

const messageColumns = `m.id, m.order_id, m.sender_type, m.sender_id, m.receiver_type, m.receiver_id, m.message, m.channel, m.sent_at`

func scanMessage(rows *sql.Rows) (MessageView, error) {
	var (
		v                         MessageView
		id                        int64
		orderID, senderID, recvID *int64
		senderType, recvType, ch  string
	)
	err := rows.Scan(&id, &orderID, &senderType, &senderID, &recvType, &recvID, &v.Body, &ch, &v.SentAt)
	if err != nil {
		return MessageView{}, err
	}

	if v.Sender.Type, err = message.ParsePartyType(senderType); err != nil {
		return MessageView{}, err
	}
	if v.Receiver.Type, err = message.ParsePartyType(recvType); err != nil {
		return MessageView{}, err
	}
	if v.Channel, err = message.ParseChannel(ch); err != nil {
		return MessageView{}, err
	}
	v.ID = kernel.ID(id)
	v.OrderID = kernel.OptionalID(orderID)
	v.Sender.ID = kernel.OptionalID(senderID)
	v.Receiver.ID = kernel.OptionalID(recvID)
	return v, nil
}

// TaskView is the read model of a queued task.
type TaskView struct {
	ID          kernel.ID
	Title       string
	Type        task.Type
	Role        task.Role
	Related     task.Related
	Priority    task.Priority
	Deadline    time.Time
	Status      task.Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

const taskColumns = `
	t.id, t.title, t.task_type, t.assigned_to, t.related_order_id, t.related_customer_id,
	t.related_driver_id, t.priority, t.deadline, t.status, t.created_at, t.completed_at`

func scanTask(rows *sql.Rows) (TaskView, error) {
	var (
		v                                TaskView
		id                               int64
		taskType, role, priority, status string
		orderID, customerID, driverID    *int64
	)
	err := rows.Scan(
		&id, &v.Title, &taskType, &role, &orderID, &customerID,
		&driverID, &priority, &v.Deadline, &status, &v.CreatedAt, &v.CompletedAt,
	)
	if err != nil {
		return TaskView{}, err
	}

	if v.Type, err = task.ParseType(taskType); err != nil {
		return TaskView{}, err
	}
	if v.Role, err = task.ParseRole(role); err != nil {
		return TaskView{}, err
	}
	if v.Priority, err = task.ParsePriority(priority); err != nil {
		return TaskView{}, err
	}
	if v.Status, err = task.ParseStatus(status); err != nil {
		return TaskView{}, err
	}
	v.ID = kernel.ID(id)
	v.Related = task.Related{
		OrderID:    kernel.OptionalID(orderID),
		CustomerID: kernel.OptionalID(customerID),
		DriverID:   kernel.OptionalID(driverID),
	}
	return v, nil
}

// InvoiceView is the read model of an invoice row.
type InvoiceView struct {
	ID           kernel.ID
	Number       string
	CustomerID   kernel.ID
	CustomerName string
	OrderID      kernel.ID
	Subtotal     float64
	Tax          float64
	Total        float64
	IssueDate    time.Time
	DueDate      time.Time
	Status       invoice.Status
}

const invoiceColumns = `
	i.id, i.invoice_number, i.customer_id, COALESCE(c.name, ''), i.order_id,
	i.subtotal, i.tax, i.total, i.issue_date, i.due_date, i.status`

func scanInvoice(rows *sql.Rows) (InvoiceView, error) {
	var (
		v                     InvoiceView
		id, customer, orderID int64
		status                string
	)
	err := rows.Scan(
		&id, &v.Number, &customer, &v.CustomerName, &orderID,
		&v.Subtotal, &v.Tax, &v.Total, &v.IssueDate, &v.DueDate, &status,
	)
	if err != nil {
		return InvoiceView{}, err
	}
	if v.Status, err = invoice.ParseStatus(status); err != nil {
		return InvoiceView{}, err
	}
	v.ID = kernel.ID(id)
	v.CustomerID = kernel.ID(customer)
	v.OrderID = kernel.ID(orderID)
	return v, nil
}
