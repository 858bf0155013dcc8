package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultDeadline is applied when an order is created without a deadline.
const DefaultDeadline = 24 * time.Hour

// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Route is the pickup and drop-off pair of an order.
type Route struct {
	PickupAddress   string
	DeliveryAddress string
}

// Parcel describes the goods being moved. Both fields are informational.
type Parcel struct {
	Description string
	WeightKg    float64
}

// ProofOfDelivery holds optional references to delivery evidence.
type ProofOfDelivery struct {
	PhotoPath     string
	SignaturePath string
}

// Order is the aggregate root of a delivery order.
//
// Order follows these invariants:
//   - Customer reference, both addresses and a non-negative price are required
//   - Total price equals base price
//   - Driver reference is present iff Status().RequiresDriver()
//   - Status only advances Pending -> Assigned -> InTransit -> Delivered
type Order struct {
	id         kernel.ID
	number     kernel.DocumentNumber
	customerID kernel.ID
	route      Route
	parcel     Parcel
	basePrice  float64
	totalPrice float64
	status     Status
	deadline   time.Time

	driverID     *kernel.ID
	assignedAt   *time.Time
	pickupTime   *time.Time
	deliveryTime *time.Time
	proof        ProofOfDelivery

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order numbered for the creation instant now.
// A zero deadline defaults to now + DefaultDeadline.
//
// Example:
//
//	o, err := order.NewOrder(customerID, order.Route{
//	    PickupAddress:   "Hauptstr. 10, 10115 Berlin",
//	    DeliveryAddress: "Nebenstr. 5, 80331 Munich",
//	}, 50.00, time.Time{}, order.Parcel{}, time.Now())
func NewOrder(
	customerID kernel.ID,
	route Route,
	basePrice float64,
	deadline time.Time,
	parcel Parcel,
	now time.Time,
) (*Order, error) {
	o := &Order{
		number:    kernel.NewOrderNumber(now),
		status:    Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if deadline.IsZero() {
		deadline = now.Add(DefaultDeadline)
	}
	o.deadline = deadline

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRoute(route),
		o.setPrice(basePrice),
		o.setParcel(parcel),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID           kernel.ID
	Number       string
	CustomerID   kernel.ID
	Route        Route
	Parcel       Parcel
	BasePrice    float64
	TotalPrice   float64
	Status       Status
	Deadline     time.Time
	DriverID     *kernel.ID
	AssignedAt   *time.Time
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Proof        ProofOfDelivery
	CreatedAt    time.Time
}

// RestoreOrder rehydrates an order from storage and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	number, err := kernel.ParseDocumentNumber(s.Number)
	if err != nil {
		return nil, err
	}

	o := &Order{
		number:       number,
		deadline:     s.Deadline,
		driverID:     s.DriverID,
		assignedAt:   s.AssignedAt,
		pickupTime:   s.PickupTime,
		deliveryTime: s.DeliveryTime,
		proof:        s.Proof,
		createdAt:    s.CreatedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		o.MarkPersisted(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setRoute(s.Route),
		o.setPrice(s.BasePrice),
		o.setParcel(s.Parcel),
		s.Status.Validate(),
		s.Status.ValidateCanHaveDriver(s.DriverID != nil),
	); err != nil {
		return nil, err
	}
	o.status = s.Status
	o.totalPrice = s.TotalPrice

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// MarkPersisted records the identity assigned by the store. It may be called once.
func (o *Order) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already persisted as %s", o.id))
	}
	o.id = id
	return nil
}

func (o *Order) ID() kernel.ID                    { return o.id }
func (o *Order) Number() kernel.DocumentNumber    { return o.number }
func (o *Order) CustomerID() kernel.ID            { return o.customerID }
func (o *Order) Route() Route                     { return o.route }
func (o *Order) Parcel() Parcel                   { return o.parcel }
func (o *Order) BasePrice() float64               { return o.basePrice }
func (o *Order) TotalPrice() float64              { return o.totalPrice }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) Deadline() time.Time              { return o.deadline }
func (o *Order) DriverID() *kernel.ID             { return o.driverID }
func (o *Order) AssignedAt() *time.Time           { return o.assignedAt }
func (o *Order) PickupTime() *time.Time           { return o.pickupTime }
func (o *Order) DeliveryTime() *time.Time         { return o.deliveryTime }
func (o *Order) ProofOfDelivery() ProofOfDelivery { return o.proof }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }

// IsOverdue reports whether the order is not delivered and its deadline has passed.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.status != Delivered && o.deadline.Before(now)
}

// OverdueBy returns how long the deadline has passed, or zero when not overdue.
func (o *Order) OverdueBy(now time.Time) time.Duration {
	if !o.IsOverdue(now) {
		return 0
	}
	return now.Sub(o.deadline)
}

// Assign hands a Pending order to a driver.
func (o *Order) Assign(driverID kernel.ID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = next
	o.driverID = &driverID
	o.assignedAt = &at
	return nil
}

// StartDelivery records the pickup of an Assigned order.
func (o *Order) StartDelivery(at time.Time) error {
	next, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = next
	o.pickupTime = &at
	return nil
}

// CompleteDelivery records the drop-off of an InTransit order with optional proof.
func (o *Order) CompleteDelivery(proof ProofOfDelivery, at time.Time) error {
	next, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = next
	o.deliveryTime = &at
	if proof.PhotoPath != "" {
		o.proof.PhotoPath = proof.PhotoPath
	}
	if proof.SignaturePath != "" {
		o.proof.SignaturePath = proof.SignaturePath
	}
	return nil
}

func (o *Order) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRoute(route Route) error {
	route.PickupAddress = strings.TrimSpace(route.PickupAddress)
	route.DeliveryAddress = strings.TrimSpace(route.DeliveryAddress)

	var err error
	if route.PickupAddress == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickup address"))
	}
	if route.DeliveryAddress == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("delivery address"))
	}
	if err != nil {
		return err
	}

	o.route = route
	return nil
}

// setPrice sets the base price; the total equals the base price.
func (o *Order) setPrice(basePrice float64) error {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%v is not a finite amount", basePrice))
	}
	if basePrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%.2f is negative", basePrice))
	}
	o.basePrice = basePrice
	o.totalPrice = basePrice
	return nil
}

func (o *Order) setParcel(parcel Parcel) error {
	if math.IsNaN(parcel.WeightKg) || math.IsInf(parcel.WeightKg, 0) || parcel.WeightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a valid weight", parcel.WeightKg))
	}
	o.parcel = parcel
	return nil
}
