// Package customer provides the Customer entity. Customers are created on
// their first order and are immutable afterwards; lookup is by email, then phone.
package customer

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Contact groups the ways to reach a customer.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Address is where the customer is based.
type Address struct {
	Street string
	City   string
}

// Customer is a person or company that places orders.
type Customer struct {
	id          kernel.ID
	contact     Contact
	address     Address
	companyName string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewCustomer validates contact data. Name and phone are required; email is
// optional but must be well formed when present.
func NewCustomer(contact Contact, address Address, companyName string, now time.Time) (*Customer, error) {
	c := &Customer{
		address:     address,
		companyName: strings.TrimSpace(companyName),
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}
	if err := c.setContact(contact); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCustomer rehydrates a customer from storage.
func RestoreCustomer(
	id kernel.ID,
	contact Contact,
	address Address,
	companyName string,
	createdAt time.Time,
) (*Customer, error) {
	c := &Customer{
		address:     address,
		companyName: companyName,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(c.MarkPersisted(id), c.setContact(contact)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// MarkPersisted records the identity assigned by the store.
func (c *Customer) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) ID() kernel.ID        { return c.id }
func (c *Customer) Contact() Contact     { return c.contact }
func (c *Customer) Address() Address     { return c.address }
func (c *Customer) CompanyName() string  { return c.companyName }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

func (c *Customer) setContact(contact Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))

	var err error
	if contact.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if contact.Phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("phone"))
	}
	if contact.Email != "" {
		if _, parseErr := mail.ParseAddress(contact.Email); parseErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("email", parseErr))
		}
	}
	if err != nil {
		return err
	}

	c.contact = contact
	return nil
}
