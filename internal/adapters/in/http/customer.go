package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/customer/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var deadline time.Time
	if body.Deadline != nil {
		deadline = *body.Deadline
	}

	cmd, err := commands.NewCreateOrderCommand(
		customer.Contact{Name: body.Name, Phone: body.Phone, Email: body.Email},
		customer.Address{Street: body.Address, City: body.City},
		body.CompanyName,
		order.Route{PickupAddress: body.PickupAddress, DeliveryAddress: body.DeliveryAddress},
		order.Parcel{Description: body.Description, WeightKg: body.WeightKg},
		body.Price,
		deadline,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{
		OrderID:     result.OrderID.Int64(),
		OrderNumber: result.OrderNumber.String(),
		CustomerID:  result.CustomerID.Int64(),
		TaskID:      result.TaskID.Int64(),
		Status:      order.Pending.String(),
	})
}

// GetOrderStatus handles GET /api/v1/customer/orders/{orderId}.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.handlers.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderStatusFromResponse(status))
}

func orderStatusFromResponse(r queries.GetOrderStatusQueryResponse) OrderStatus {
	out := OrderStatus{
		Order:    orderFromView(r.Order),
		Messages: mapSlice(r.Messages, messageFromView),
	}
	if r.Driver != nil {
		d := driverFromView(*r.Driver)
		out.Driver = &d
	}
	return out
}
