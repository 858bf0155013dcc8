package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists the orders assigned to one driver, earliest
// deadline first.
type GetDriverOrdersQuery struct {
	driverID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetDriverOrdersQuery(driverID kernel.ID) (GetDriverOrdersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, err
	}
	return GetDriverOrdersQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

func (q GetDriverOrdersQuery) DriverID() kernel.ID { return q.driverID }
