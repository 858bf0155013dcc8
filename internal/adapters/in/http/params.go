package http

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathID binds a required int64 path parameter and validates it as an id.
func pathID(ctx echo.Context, name string) (kernel.ID, error) {
	var raw int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.NewID(raw)
}

// optionalID converts an optional raw id from a request body.
func optionalID(raw *int64) (*kernel.ID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.NewID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
