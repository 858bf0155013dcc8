package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrUpdateDriverStatusCommandIsNotConstructed = errors.New(
		"UpdateDriverStatusCommand must be created via NewUpdateDriverStatusCommand constructor",
	)
	ErrDriverLoginCommandIsNotConstructed = errors.New(
		"DriverLoginCommand must be created via NewDriverLoginCommand constructor",
	)
	ErrPostDriverUpdateCommandIsNotConstructed = errors.New(
		"PostDriverUpdateCommand must be created via NewPostDriverUpdateCommand constructor",
	)
)

// UpdateDriverStatusCommand changes a driver's availability and location.
type UpdateDriverStatusCommand struct {
	driverID kernel.ID
	status   driver.Status
	location string

	guard guard.ConstructorGuard
}

func NewUpdateDriverStatusCommand(driverID kernel.ID, status driver.Status, location string) (UpdateDriverStatusCommand, error) {
	if err := errors.Join(driverID.Validate(), status.Validate()); err != nil {
		return UpdateDriverStatusCommand{}, err
	}
	return UpdateDriverStatusCommand{
		driverID: driverID,
		status:   status,
		location: strings.TrimSpace(location),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverStatusCommandIsNotConstructed)
}

func (c UpdateDriverStatusCommand) DriverID() kernel.ID   { return c.driverID }
func (c UpdateDriverStatusCommand) Status() driver.Status { return c.status }
func (c UpdateDriverStatusCommand) Location() string      { return c.location }

// DriverLoginCommand authenticates a driver by id and phone.
type DriverLoginCommand struct {
	driverID kernel.ID
	phone    string

	guard guard.ConstructorGuard
}

func NewDriverLoginCommand(driverID kernel.ID, phone string) (DriverLoginCommand, error) {
	phone = strings.TrimSpace(phone)
	err := driverID.Validate()
	if phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("phone"))
	}
	if err != nil {
		return DriverLoginCommand{}, err
	}
	return DriverLoginCommand{driverID: driverID, phone: phone, guard: guard.NewConstructorGuard()}, nil
}

func (c DriverLoginCommand) Validate() error {
	return c.guard.Validate(ErrDriverLoginCommandIsNotConstructed)
}

func (c DriverLoginCommand) DriverID() kernel.ID { return c.driverID }
func (c DriverLoginCommand) Phone() string       { return c.phone }

// PostDriverUpdateCommand is a free-text progress report about an order. A
// location also puts the driver on delivery at that location.
type PostDriverUpdateCommand struct {
	orderID  kernel.ID
	driverID *kernel.ID
	body     string
	location string

	guard guard.ConstructorGuard
}

func NewPostDriverUpdateCommand(orderID kernel.ID, driverID *kernel.ID, body, location string) (PostDriverUpdateCommand, error) {
	body = strings.TrimSpace(body)
	err := validateOrderAndDriver(orderID, driverID)
	if body == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("message"))
	}
	if err != nil {
		return PostDriverUpdateCommand{}, err
	}
	return PostDriverUpdateCommand{
		orderID:  orderID,
		driverID: driverID,
		body:     body,
		location: strings.TrimSpace(location),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PostDriverUpdateCommand) Validate() error {
	return c.guard.Validate(ErrPostDriverUpdateCommandIsNotConstructed)
}

func (c PostDriverUpdateCommand) OrderID() kernel.ID   { return c.orderID }
func (c PostDriverUpdateCommand) DriverID() *kernel.ID { return c.driverID }
func (c PostDriverUpdateCommand) Body() string         { return c.body }
func (c PostDriverUpdateCommand) Location() string     { return c.location }
