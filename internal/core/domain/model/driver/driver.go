// Package driver provides the Driver entity and its availability status.
// Drivers change only through status updates (login, logout, on delivery).
package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrPhoneMismatch is returned when a login phone does not match the driver record.
	ErrPhoneMismatch = errors.New("phone does not match driver")
)

// Status is the availability of a driver.
type Status int

const (
	UnknownStatus Status = iota
	Offline
	Online
	OnDelivery
)

var statusNames = map[Status]string{
	Offline:    "offline",
	Online:     "online",
	OnDelivery: "on_delivery",
}

// ParseStatus converts the persisted name into a Status.
func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid driver status", raw))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Driver is a person executing deliveries.
type Driver struct {
	id              kernel.ID
	name            string
	phone           string
	status          Status
	currentLocation string
	lastActive      *time.Time

	guard guard.ConstructorGuard
}

// NewDriver registers an offline driver.
func NewDriver(name, phone string) (*Driver, error) {
	d := &Driver{status: Offline, guard: guard.NewConstructorGuard()}
	if err := errors.Join(d.setName(name), d.setPhone(phone)); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDriver rehydrates a driver from storage.
func RestoreDriver(
	id kernel.ID,
	name, phone string,
	status Status,
	currentLocation string,
	lastActive *time.Time,
) (*Driver, error) {
	d := &Driver{
		status:          status,
		currentLocation: currentLocation,
		lastActive:      lastActive,
		guard:           guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		d.MarkPersisted(id),
		d.setName(name),
		d.setPhone(phone),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// MarkPersisted records the identity assigned by the store.
func (d *Driver) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) ID() kernel.ID           { return d.id }
func (d *Driver) Name() string            { return d.name }
func (d *Driver) Phone() string           { return d.phone }
func (d *Driver) Status() Status          { return d.status }
func (d *Driver) CurrentLocation() string { return d.currentLocation }
func (d *Driver) LastActive() *time.Time  { return d.lastActive }
func (d *Driver) IsActive() bool          { return d.status == Online }

// UpdateStatus sets the availability and touches last_active. An empty
// location keeps the previous one.
func (d *Driver) UpdateStatus(status Status, location string, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	if location = strings.TrimSpace(location); location != "" {
		d.currentLocation = location
	}
	d.lastActive = &at
	return nil
}

// VerifyPhone checks the login credential of the driver.
func (d *Driver) VerifyPhone(phone string) error {
	if strings.TrimSpace(phone) != d.phone {
		return ErrPhoneMismatch
	}
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}
