package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand hands a pending order to the first active driver.
type AssignDriverCommand struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID kernel.ID) (AssignDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}
	return AssignDriverCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() kernel.ID { return c.orderID }
