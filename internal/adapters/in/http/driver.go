package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// DriverLogin handles POST /api/v1/driver/login.
func (s *Server) DriverLogin(ctx echo.Context) error {
	var body DriverLogin
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewDriverLoginCommand(kernel.ID(body.DriverID), body.Phone)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.DriverLogin.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DriverSession{
		Driver: driverFromDomain(result.Driver),
		Orders: mapSlice(result.Orders, orderFromDomain),
	})
}

// UpdateDriverStatus handles POST /api/v1/driver/status.
func (s *Server) UpdateDriverStatus(ctx echo.Context) error {
	var body DriverStatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := driver.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateDriverStatusCommand(kernel.ID(body.DriverID), status, body.Location)
	if err != nil {
		return s.fail(ctx, err)
	}

	d, err := s.handlers.UpdateDriverStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, driverFromDomain(d))
}

// GetDriverOrders handles GET /api/v1/driver/{driverId}/orders.
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	driverID, err := pathID(ctx, "driverId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDriverOrdersQuery(driverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetDriverOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, mapSlice(orders, orderFromView))
}

// StartDelivery handles POST /api/v1/driver/orders/{orderId}/start and
// answers with the order as it is after pickup.
func (s *Server) StartDelivery(ctx echo.Context) error {
	orderID, body, err := deliveryRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := optionalID(body.DriverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.StartDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
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

	return ctx.JSON(http.StatusOK, orderFromView(status.Order))
}

// CompleteDelivery handles POST /api/v1/driver/orders/{orderId}/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, body, err := deliveryRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := optionalID(body.DriverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, driverID, order.ProofOfDelivery{
		PhotoPath:     body.PhotoPath,
		SignaturePath: body.SignaturePath,
	}, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompletedDelivery{
		InvoiceID:     result.InvoiceID.Int64(),
		InvoiceNumber: result.InvoiceNumber.String(),
		TaskID:        result.TaskID.Int64(),
	})
}

// PostDriverUpdate handles POST /api/v1/driver/orders/{orderId}/update.
func (s *Server) PostDriverUpdate(ctx echo.Context) error {
	orderID, body, err := deliveryRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := optionalID(body.DriverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPostDriverUpdateCommand(orderID, driverID, body.Message, body.Location)
	if err != nil {
		return s.fail(ctx, err)
	}

	taskID, err := s.handlers.PostDriverUpdate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, TaskRef{TaskID: taskID.Int64()})
}

// deliveryRequest reads the order id and the optional body shared by the
// delivery routes.
func deliveryRequest(ctx echo.Context) (kernel.ID, DeliveryProgress, error) {
	var body DeliveryProgress

	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return 0, body, err
	}
	if err = ctx.Bind(&body); err != nil {
		return 0, body, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return orderID, body, nil
}
