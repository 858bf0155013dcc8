package commands

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultOrderPrice is charged when an order is placed without a price.
const DefaultOrderPrice = 50.00

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a customer order. The customer is matched by
// email, then by phone, and registered when neither matches.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    customer.Contact{Name: "Anna Schmidt", Phone: "+49 30 1234", Email: "anna@example.com"},
//	    customer.Address{},
//	    "",
//	    order.Route{PickupAddress: "Hauptstr. 10, Berlin", DeliveryAddress: "Marienplatz 1, Munich"},
//	    order.Parcel{Description: "Documents", WeightKg: 1.5},
//	    nil,
//	    time.Time{},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := NewCreateOrderCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	contact     customer.Contact
	address     customer.Address
	companyName string
	route       order.Route
	parcel      order.Parcel
	price       float64
	deadline    time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. A nil price means
// DefaultOrderPrice and a zero deadline means the order default.
func NewCreateOrderCommand(
	contact customer.Contact,
	address customer.Address,
	companyName string,
	route order.Route,
	parcel order.Parcel,
	price *float64,
	deadline time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		contact:     contact,
		address:     address,
		companyName: strings.TrimSpace(companyName),
		route:       route,
		parcel:      parcel,
		price:       DefaultOrderPrice,
		deadline:    deadline,
		guard:       guard.NewConstructorGuard(),
	}
	if price != nil {
		cmd.price = *price
	}

	var err error
	if strings.TrimSpace(contact.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer name"))
	}
	if strings.TrimSpace(contact.Phone) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer phone"))
	}
	if strings.TrimSpace(route.PickupAddress) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickup address"))
	}
	if strings.TrimSpace(route.DeliveryAddress) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("delivery address"))
	}
	if math.IsNaN(cmd.price) || math.IsInf(cmd.price, 0) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not a finite amount", cmd.price)))
	} else if cmd.price < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%.2f is negative", cmd.price)))
	}
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Contact() customer.Contact { return c.contact }
func (c CreateOrderCommand) Address() customer.Address { return c.address }
func (c CreateOrderCommand) CompanyName() string       { return c.companyName }
func (c CreateOrderCommand) Route() order.Route        { return c.route }
func (c CreateOrderCommand) Parcel() order.Parcel      { return c.parcel }
func (c CreateOrderCommand) Price() float64            { return c.price }
func (c CreateOrderCommand) Deadline() time.Time       { return c.deadline }
