package queries

import (
	"context"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	orders, err := listOrders(db, `SELECT `+orderColumns+` FROM orders o WHERE o.id = ?`, query.OrderID().Int64())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	if len(orders) == 0 {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	response := GetOrderStatusQueryResponse{Order: orders[0], Messages: make([]MessageView, 0)}

	if driverID := response.Order.DriverID; driverID != nil {
		drivers, err := listDrivers(db, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = ?`, driverID.Int64())
		if err != nil {
			return GetOrderStatusQueryResponse{}, err
		}
		if len(drivers) > 0 {
			response.Driver = &drivers[0]
		}
	}

	rows, err := db.Raw(`
		SELECT `+messageColumns+`
		FROM messages m
		WHERE m.order_id = ?
		ORDER BY m.sent_at DESC, m.id DESC
	`, query.OrderID().Int64()).Rows()
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return GetOrderStatusQueryResponse{}, err
		}
		response.Messages = append(response.Messages, msg)
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return response, nil
}

func listOrders(db *gorm.DB, sql string, args ...any) ([]OrderView, error) {
	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func listDrivers(db *gorm.DB, sql string, args ...any) ([]DriverView, error) {
	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]DriverView, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}
