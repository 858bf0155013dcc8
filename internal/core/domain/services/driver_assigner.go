package services

import (
	"errors"
	"sort"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/order"
)

// ErrNoActiveDrivers is returned when no online driver can take an order.
var ErrNoActiveDrivers = errors.New("no active drivers")

// DriverAssigner selects a driver for a pending order and assigns it.
//
// Selection policy:
//   - only online drivers are candidates
//   - candidates are ordered by name, ties broken by id
//   - the first candidate wins
//
// The policy is deterministic: the same driver set always yields the same pick.
//
// Example:
//
//	assigner := services.NewDriverAssigner()
//	d, err := assigner.Assign(o, activeDrivers, time.Now())
//	if errors.Is(err, services.ErrNoActiveDrivers) {
//	    // leave the order pending and retry later
//	}
type DriverAssigner struct{}

func NewDriverAssigner() DriverAssigner {
	return DriverAssigner{}
}

// Assign moves the order to Assigned with the selected driver. The order must
// be Pending; the driver slice is not modified.
func (a DriverAssigner) Assign(o *order.Order, drivers []*driver.Driver, at time.Time) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	selected, err := a.Select(drivers)
	if err != nil {
		return nil, err
	}

	if err = o.Assign(selected.ID(), at); err != nil {
		return nil, err
	}

	return selected, nil
}

// Select returns the driver the policy picks from drivers.
func (a DriverAssigner) Select(drivers []*driver.Driver) (*driver.Driver, error) {
	candidates := make([]*driver.Driver, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.IsActive() {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoActiveDrivers
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Name() != candidates[j].Name() {
			return candidates[i].Name() < candidates[j].Name()
		}
		return candidates[i].ID() < candidates[j].ID()
	})

	return candidates[0], nil
}
