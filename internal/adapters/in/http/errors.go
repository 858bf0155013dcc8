package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors to HTTP status codes. State conflicts are
// checked before validation errors because an illegal transition is wrapped
// in a ValueIsInvalid error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, driver.ErrPhoneMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrTransitionNotAllowed),
		errors.Is(err, commands.ErrOrderNotPending),
		errors.Is(err, commands.ErrDriverMismatch),
		errors.Is(err, commands.ErrInvoiceExists),
		errors.Is(err, task.ErrTaskAlreadyCompleted),
		errors.Is(err, task.ErrRoleDoesNotOwnType),
		errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and hidden
// from the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		msg = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}
