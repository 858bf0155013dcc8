package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Requests.

type NewOrder struct {
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	CompanyName     string     `json:"company_name"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	Description     string     `json:"description"`
	WeightKg        float64    `json:"weight_kg"`
	Price           *float64   `json:"price"`
	Deadline        *time.Time `json:"deadline"`
}

type DriverLogin struct {
	DriverID int64  `json:"driver_id"`
	Phone    string `json:"phone"`
}

type DriverStatusUpdate struct {
	DriverID int64  `json:"driver_id"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

type DeliveryProgress struct {
	DriverID      *int64 `json:"driver_id"`
	PhotoPath     string `json:"photo_path"`
	SignaturePath string `json:"signature_path"`
	Notes         string `json:"notes"`
	Message       string `json:"message"`
	Location      string `json:"location"`
}

type NewTask struct {
	Title             string     `json:"title"`
	TaskType          string     `json:"task_type"`
	AssignedTo        string     `json:"assigned_to"`
	Priority          string     `json:"priority"`
	Deadline          *time.Time `json:"deadline"`
	RelatedOrderID    *int64     `json:"related_order_id"`
	RelatedCustomerID *int64     `json:"related_customer_id"`
	RelatedDriverID   *int64     `json:"related_driver_id"`
}

type NewMessage struct {
	OrderID       *int64 `json:"order_id"`
	RecipientType string `json:"recipient_type"`
	RecipientID   *int64 `json:"recipient_id"`
	Channel       string `json:"channel"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
}

type WebhookUpdate struct {
	OrderID *int64 `json:"order_id"`
	Message string `json:"message"`
}

// Responses.

type CreatedOrder struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CustomerID  int64  `json:"customer_id"`
	TaskID      int64  `json:"task_id"`
	Status      string `json:"status"`
}

type Order struct {
	ID                int64      `json:"id"`
	OrderNumber       string     `json:"order_number"`
	CustomerID        int64      `json:"customer_id"`
	PickupAddress     string     `json:"pickup_address"`
	DeliveryAddress   string     `json:"delivery_address"`
	ParcelDescription string     `json:"parcel_description,omitempty"`
	WeightKg          float64    `json:"weight_kg,omitempty"`
	BasePrice         float64    `json:"base_price"`
	TotalPrice        float64    `json:"total_price"`
	Status            string     `json:"status"`
	Deadline          time.Time  `json:"deadline"`
	AssignedDriverID  *int64     `json:"assigned_driver_id"`
	AssignedAt        *time.Time `json:"assigned_at"`
	PickupTime        *time.Time `json:"pickup_time"`
	DeliveryTime      *time.Time `json:"delivery_time"`
	PhotoPath         string     `json:"photo_path,omitempty"`
	SignaturePath     string     `json:"signature_path,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Driver struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Status          string     `json:"status"`
	CurrentLocation string     `json:"current_location,omitempty"`
	LastActive      *time.Time `json:"last_active"`
}

type Message struct {
	ID           int64     `json:"id"`
	OrderID      *int64    `json:"order_id"`
	SenderType   string    `json:"sender_type"`
	SenderID     *int64    `json:"sender_id"`
	ReceiverType string    `json:"receiver_type"`
	ReceiverID   *int64    `json:"receiver_id"`
	Message      string    `json:"message"`
	Channel      string    `json:"channel"`
	SentAt       time.Time `json:"sent_at"`
}

type OrderStatus struct {
	Order    Order     `json:"order"`
	Driver   *Driver   `json:"driver"`
	Messages []Message `json:"messages"`
}

type DriverSession struct {
	Driver Driver  `json:"driver"`
	Orders []Order `json:"orders"`
}

type Drivers struct {
	Drivers     []Driver `json:"drivers"`
	OnlineCount int      `json:"online_count"`
}

type CompletedDelivery struct {
	InvoiceID     int64  `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	TaskID        int64  `json:"task_id"`
}

type TaskRef struct {
	TaskID int64 `json:"task_id"`
}

type Task struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	TaskType          string     `json:"task_type"`
	AssignedTo        string     `json:"assigned_to"`
	RelatedOrderID    *int64     `json:"related_order_id"`
	RelatedCustomerID *int64     `json:"related_customer_id"`
	RelatedDriverID   *int64     `json:"related_driver_id"`
	Priority          string     `json:"priority"`
	Deadline          time.Time  `json:"deadline"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	OrderID       int64     `json:"order_id"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`
}

type UnpaidInvoices struct {
	Invoices    []Invoice `json:"invoices"`
	TotalAmount float64   `json:"total_amount"`
}

type Summary struct {
	PendingOrders   int       `json:"pending_orders"`
	InTransit       int       `json:"in_transit"`
	OverdueOrders   int       `json:"overdue_orders"`
	UnpaidInvoices  int       `json:"unpaid_invoices"`
	OverdueInvoices int       `json:"overdue_invoices"`
	ActiveDrivers   int       `json:"active_drivers"`
	Timestamp       time.Time `json:"timestamp"`
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func orderFromView(v queries.OrderView) Order {
	return Order{
		ID:                v.ID.Int64(),
		OrderNumber:       v.Number,
		CustomerID:        v.CustomerID.Int64(),
		PickupAddress:     v.PickupAddress,
		DeliveryAddress:   v.DeliveryAddress,
		ParcelDescription: v.ParcelDescription,
		WeightKg:          v.WeightKg,
		BasePrice:         v.BasePrice,
		TotalPrice:        v.TotalPrice,
		Status:            v.Status.String(),
		Deadline:          v.Deadline.UTC(),
		AssignedDriverID:  kernel.RawOptionalID(v.DriverID),
		AssignedAt:        utc(v.AssignedAt),
		PickupTime:        utc(v.PickupTime),
		DeliveryTime:      utc(v.DeliveryTime),
		PhotoPath:         v.PhotoPath,
		SignaturePath:     v.SignaturePath,
		CreatedAt:         v.CreatedAt.UTC(),
	}
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:                o.ID().Int64(),
		OrderNumber:       o.Number().String(),
		CustomerID:        o.CustomerID().Int64(),
		PickupAddress:     o.Route().PickupAddress,
		DeliveryAddress:   o.Route().DeliveryAddress,
		ParcelDescription: o.Parcel().Description,
		WeightKg:          o.Parcel().WeightKg,
		BasePrice:         o.BasePrice(),
		TotalPrice:        o.TotalPrice(),
		Status:            o.Status().String(),
		Deadline:          o.Deadline().UTC(),
		AssignedDriverID:  kernel.RawOptionalID(o.DriverID()),
		AssignedAt:        utc(o.AssignedAt()),
		PickupTime:        utc(o.PickupTime()),
		DeliveryTime:      utc(o.DeliveryTime()),
		PhotoPath:         o.ProofOfDelivery().PhotoPath,
		SignaturePath:     o.ProofOfDelivery().SignaturePath,
		CreatedAt:         o.CreatedAt().UTC(),
	}
}

func driverFromView(v queries.DriverView) Driver {
	return Driver{
		ID:              v.ID.Int64(),
		Name:            v.Name,
		Phone:           v.Phone,
		Status:          v.Status.String(),
		CurrentLocation: v.CurrentLocation,
		LastActive:      utc(v.LastActive),
	}
}

func driverFromDomain(d *driver.Driver) Driver {
	return Driver{
		ID:              d.ID().Int64(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		Status:          d.Status().String(),
		CurrentLocation: d.CurrentLocation(),
		LastActive:      utc(d.LastActive()),
	}
}

func messageFromView(v queries.MessageView) Message {
	return Message{
		ID:           v.ID.Int64(),
		OrderID:      kernel.RawOptionalID(v.OrderID),
		SenderType:   v.Sender.Type.String(),
		SenderID:     kernel.RawOptionalID(v.Sender.ID),
		ReceiverType: v.Receiver.Type.String(),
		ReceiverID:   kernel.RawOptionalID(v.Receiver.ID),
		Message:      v.Body,
		Channel:      v.Channel.String(),
		SentAt:       v.SentAt.UTC(),
	}
}

func messageFromDomain(m *message.Message) Message {
	return messageFromView(queries.MessageView{
		ID:       m.ID(),
		OrderID:  m.OrderID(),
		Sender:   m.Sender(),
		Receiver: m.Receiver(),
		Body:     m.Body(),
		Channel:  m.Channel(),
		SentAt:   m.SentAt(),
	})
}

func taskFromView(v queries.TaskView) Task {
	return Task{
		ID:                v.ID.Int64(),
		Title:             v.Title,
		TaskType:          v.Type.String(),
		AssignedTo:        v.Role.String(),
		RelatedOrderID:    kernel.RawOptionalID(v.Related.OrderID),
		RelatedCustomerID: kernel.RawOptionalID(v.Related.CustomerID),
		RelatedDriverID:   kernel.RawOptionalID(v.Related.DriverID),
		Priority:          v.Priority.String(),
		Deadline:          v.Deadline.UTC(),
		Status:            v.Status.String(),
		CreatedAt:         v.CreatedAt.UTC(),
		CompletedAt:       utc(v.CompletedAt),
	}
}

func taskFromDomain(t *task.Task) Task {
	return taskFromView(queries.TaskView{
		ID:          t.ID(),
		Title:       t.Title(),
		Type:        t.Type(),
		Role:        t.Role(),
		Related:     t.Related(),
		Priority:    t.Priority(),
		Deadline:    t.Deadline(),
		Status:      t.Status(),
		CreatedAt:   t.CreatedAt(),
		CompletedAt: t.CompletedAt(),
	})
}

func invoiceFromView(v queries.InvoiceView) Invoice {
	return Invoice{
		ID:            v.ID.Int64(),
		InvoiceNumber: v.Number,
		CustomerID:    v.CustomerID.Int64(),
		CustomerName:  v.CustomerName,
		OrderID:       v.OrderID.Int64(),
		Subtotal:      invoice.RoundCents(v.Subtotal),
		Tax:           invoice.RoundCents(v.Tax),
		Total:         v.Total,
		IssueDate:     v.IssueDate.UTC(),
		DueDate:       v.DueDate.UTC(),
		Status:        v.Status.String(),
	}
}

func mapSlice[V, D any](in []V, f func(V) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
