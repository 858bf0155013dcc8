package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func newDriver(t *testing.T, id int64, name string, status driver.Status) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.ID(id), name, "0170"+name, status, "", nil)
	require.NoError(t, err)
	return d
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.ID(1), order.Route{
		PickupAddress:   "Hauptstr. 10, Berlin",
		DeliveryAddress: "Nebenstr. 5, Munich",
	}, 50, time.Time{}, order.Parcel{}, now)
	require.NoError(t, err)
	return o
}

func TestDriverAssigner_Assign(t *testing.T) {
	drivers := []*driver.Driver{
		newDriver(t, 3, "Zoe", driver.Online),
		newDriver(t, 2, "Anna", driver.Offline),
		newDriver(t, 1, "Ben", driver.Online),
		newDriver(t, 4, "Carl", driver.OnDelivery),
	}
	o := newPendingOrder(t)

	selected, err := services.NewDriverAssigner().Assign(o, drivers, now)

	require.NoError(t, err)
	assert.Equal(t, "Ben", selected.Name())
	assert.Equal(t, order.Assigned, o.Status())
	assert.Equal(t, kernel.ID(1), *o.DriverID())
	assert.Equal(t, now, *o.AssignedAt())
	assert.Equal(t, "Zoe", drivers[0].Name(), "input slice is left untouched")
}

func TestDriverAssigner_IsDeterministic(t *testing.T) {
	a := newDriver(t, 7, "Max", driver.Online)
	b := newDriver(t, 5, "Max", driver.Online)

	first, err := services.NewDriverAssigner().Select([]*driver.Driver{a, b})
	require.NoError(t, err)
	second, err := services.NewDriverAssigner().Select([]*driver.Driver{b, a})
	require.NoError(t, err)

	assert.Equal(t, kernel.ID(5), first.ID())
	assert.Equal(t, first.ID(), second.ID())
}

func TestDriverAssigner_NoActiveDrivers(t *testing.T) {
	o := newPendingOrder(t)

	_, err := services.NewDriverAssigner().Assign(o, nil, now)
	require.ErrorIs(t, err, services.ErrNoActiveDrivers)

	_, err = services.NewDriverAssigner().Assign(o, []*driver.Driver{newDriver(t, 1, "Ann", driver.Offline)}, now)
	require.ErrorIs(t, err, services.ErrNoActiveDrivers)
	assert.Equal(t, order.Pending, o.Status())
	assert.Nil(t, o.DriverID())
}

func TestDriverAssigner_RejectsNonPendingOrder(t *testing.T) {
	o := newPendingOrder(t)
	require.NoError(t, o.Assign(kernel.ID(9), now))

	_, err := services.NewDriverAssigner().Assign(o, []*driver.Driver{newDriver(t, 1, "Ann", driver.Online)}, now)
	require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	assert.Equal(t, kernel.ID(9), *o.DriverID())
}

func TestDriverAssigner_InvalidDriver(t *testing.T) {
	_, err := services.NewDriverAssigner().Select([]*driver.Driver{{}})
	require.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
}

func TestWageCalculator(t *testing.T) {
	calc, err := services.NewWageCalculator(12.5)
	require.NoError(t, err)
	assert.Equal(t, 37.5, calc.Calculate(3))
	assert.Equal(t, 0.0, calc.Calculate(0))

	def, err := services.NewWageCalculator(0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, def.Calculate(2))

	_, err = services.NewWageCalculator(-1)
	require.Error(t, err)
}
