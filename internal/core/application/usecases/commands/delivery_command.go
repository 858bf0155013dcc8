package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var (
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// StartDeliveryCommand records the pickup of an assigned order. When driverID
// is set the order must be assigned to that driver.
type StartDeliveryCommand struct {
	orderID  kernel.ID
	driverID *kernel.ID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(orderID kernel.ID, driverID *kernel.ID) (StartDeliveryCommand, error) {
	if err := validateOrderAndDriver(orderID, driverID); err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{orderID: orderID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) OrderID() kernel.ID   { return c.orderID }
func (c StartDeliveryCommand) DriverID() *kernel.ID { return c.driverID }

// CompleteDeliveryCommand records the drop-off of an in-transit order.
type CompleteDeliveryCommand struct {
	orderID  kernel.ID
	driverID *kernel.ID
	proof    order.ProofOfDelivery
	notes    string

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(
	orderID kernel.ID,
	driverID *kernel.ID,
	proof order.ProofOfDelivery,
	notes string,
) (CompleteDeliveryCommand, error) {
	if err := validateOrderAndDriver(orderID, driverID); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{
		orderID:  orderID,
		driverID: driverID,
		proof:    proof,
		notes:    strings.TrimSpace(notes),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.ID           { return c.orderID }
func (c CompleteDeliveryCommand) DriverID() *kernel.ID         { return c.driverID }
func (c CompleteDeliveryCommand) Proof() order.ProofOfDelivery { return c.proof }
func (c CompleteDeliveryCommand) Notes() string                { return c.notes }

func validateOrderAndDriver(orderID kernel.ID, driverID *kernel.ID) error {
	err := orderID.Validate()
	if driverID != nil {
		err = errors.Join(err, driverID.Validate())
	}
	return err
}

// checkAssignedDriver rejects drivers acting on someone else's order.
func checkAssignedDriver(o *order.Order, driverID *kernel.ID) error {
	if driverID == nil {
		return nil
	}
	if o.DriverID() == nil || *o.DriverID() != *driverID {
		return fmt.Errorf("%w: order %s, driver %s", ErrDriverMismatch, o.Number(), driverID)
	}
	return nil
}
