package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetDashboard handles GET /api/v1/admin/dashboard.
func (s *Server) GetDashboard(ctx echo.Context) error {
	now := time.Now().UTC()
	summary, err := s.handlers.GetSummary.Handle(ctx.Request().Context(), queries.NewGetSummaryQuery(now))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Summary{
		PendingOrders:   summary.PendingOrders,
		InTransit:       summary.InTransitOrders,
		OverdueOrders:   summary.OverdueOrders,
		UnpaidInvoices:  summary.UnpaidInvoices,
		OverdueInvoices: summary.OverdueInvoices,
		ActiveDrivers:   summary.ActiveDrivers,
		Timestamp:       now,
	})
}

// GetPendingTasks handles GET /api/v1/admin/tasks with an optional role
// filter.
func (s *Server) GetPendingTasks(ctx echo.Context) error {
	var rawRole *string
	err := runtime.BindQueryParameter("form", true, false, "role", ctx.QueryParams(), &rawRole)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("role", err))
	}

	var role *task.Role
	if rawRole != nil && *rawRole != "" {
		r, parseErr := task.ParseRole(*rawRole)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		role = &r
	}

	query, err := queries.NewGetPendingTasksQuery(role)
	if err != nil {
		return s.fail(ctx, err)
	}

	tasks, err := s.handlers.GetPendingTasks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, mapSlice(tasks, taskFromView))
}

// CreateTask handles POST /api/v1/admin/tasks. Role and priority default to
// the type's owner and normal.
func (s *Server) CreateTask(ctx echo.Context) error {
	var body NewTask
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	spec, err := taskSpec(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateTaskCommand(spec)
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.handlers.CreateTask.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, taskFromDomain(t))
}

func taskSpec(body NewTask) (task.Spec, error) {
	spec := task.Spec{Title: body.Title}

	var err error
	if spec.Type, err = task.ParseType(body.TaskType); err != nil {
		return spec, err
	}
	if body.AssignedTo != "" {
		if spec.Role, err = task.ParseRole(body.AssignedTo); err != nil {
			return spec, err
		}
	}
	if body.Priority != "" {
		if spec.Priority, err = task.ParsePriority(body.Priority); err != nil {
			return spec, err
		}
	}
	if body.Deadline != nil {
		spec.Deadline = *body.Deadline
	}
	if spec.Related.OrderID, err = optionalID(body.RelatedOrderID); err != nil {
		return spec, err
	}
	if spec.Related.CustomerID, err = optionalID(body.RelatedCustomerID); err != nil {
		return spec, err
	}
	if spec.Related.DriverID, err = optionalID(body.RelatedDriverID); err != nil {
		return spec, err
	}
	return spec, nil
}

// GetUnpaidInvoices handles GET /api/v1/admin/invoices/unpaid.
func (s *Server) GetUnpaidInvoices(ctx echo.Context) error {
	result, err := s.handlers.GetUnpaidInvoices.Handle(ctx.Request().Context(), queries.NewGetUnpaidInvoicesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UnpaidInvoices{
		Invoices:    mapSlice(result.Invoices, invoiceFromView),
		TotalAmount: result.Outstanding,
	})
}

// GetDrivers handles GET /api/v1/admin/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	result, err := s.handlers.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Drivers{
		Drivers:     mapSlice(result.Drivers, driverFromView),
		OnlineCount: result.Online,
	})
}
