package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery lists every driver by name.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// GetDriversQueryResponse carries the drivers and how many of them are online.
type GetDriversQueryResponse struct {
	Drivers []DriverView
	Online  int
}
