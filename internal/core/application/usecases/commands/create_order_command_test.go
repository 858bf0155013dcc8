package commands_test

import (
	"math"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContact = customer.Contact{Name: "Anna Schmidt", Phone: "+49 30 1234", Email: "Anna@Example.com"}
	testRoute   = order.Route{PickupAddress: "Hauptstr. 10, Berlin", DeliveryAddress: "Marienplatz 1, Munich"}
)

func TestNewCreateOrderCommand_DefaultPrice(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(testContact, customer.Address{}, "", testRoute, order.Parcel{}, nil, time.Time{})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.InDelta(t, commands.DefaultOrderPrice, cmd.Price(), 0.001)
}

func TestNewCreateOrderCommand_ExplicitPrice(t *testing.T) {
	price := 12.5
	cmd, err := commands.NewCreateOrderCommand(testContact, customer.Address{}, "", testRoute, order.Parcel{}, &price, time.Time{})

	require.NoError(t, err)
	assert.InDelta(t, 12.5, cmd.Price(), 0.001)
}

func TestNewCreateOrderCommand_MissingFields(t *testing.T) {
	price := -1.0
	_, err := commands.NewCreateOrderCommand(customer.Contact{}, customer.Address{}, "", order.Route{}, order.Parcel{}, &price, time.Time{})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "pickup address")
	assert.Contains(t, err.Error(), "customer phone")
}

func TestNewCreateOrderCommand_NonFinitePrice(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := commands.NewCreateOrderCommand(testContact, customer.Address{}, "", testRoute, order.Parcel{}, &price, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid, "price %v", price)
		assert.Contains(t, err.Error(), "price")
	}
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
