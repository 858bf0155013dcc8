package order

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"
)

// ErrTransitionNotAllowed is the cause attached to every rejected status transition.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//
// Every transition moves forward exactly one step.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	// Pending orders wait for a driver.
	Pending
	// Assigned orders have a driver who has not picked up yet.
	Assigned
	// InTransit orders were picked up and are on the way.
	InTransit
	// Delivered is final.
	Delivered
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Assigned:  "assigned",
	InTransit: "in_transit",
	Delivered: "delivered",
}

// ParseStatus converts the persisted name into a Status.
func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", raw))
}

// Validate reports whether the status is one of the defined states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// RequiresDriver reports whether orders in this status must reference a driver.
func (s Status) RequiresDriver() bool {
	return s == Assigned || s == InTransit || s == Delivered
}

// ValidateCanHaveDriver enforces that a driver is referenced exactly in the
// Assigned, InTransit and Delivered states.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && !s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}
	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}

// Assign transitions Pending to Assigned.
func (s Status) Assign() (Status, error) {
	return s.advance(Pending, Assigned)
}

// StartDelivery transitions Assigned to InTransit.
func (s Status) StartDelivery() (Status, error) {
	return s.advance(Assigned, InTransit)
}

// CompleteDelivery transitions InTransit to Delivered.
func (s Status) CompleteDelivery() (Status, error) {
	return s.advance(InTransit, Delivered)
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s, to),
		)
	}
	return to, nil
}
