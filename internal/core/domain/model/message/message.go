// Package message provides the append-only communication log entry.
package message

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Channel is the medium a message travelled through.
type Channel int

const (
	UnknownChannel Channel = iota
	SMS
	Email
	WhatsApp
	Webhook
	System
)

var channelNames = map[Channel]string{
	SMS:      "sms",
	Email:    "email",
	WhatsApp: "whatsapp",
	Webhook:  "webhook",
	System:   "system",
}

func ParseChannel(raw string) (Channel, error) {
	for c, name := range channelNames {
		if name == raw {
			return c, nil
		}
	}
	return UnknownChannel, errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%q is not a valid channel", raw))
}

func (c Channel) Validate() error {
	if _, ok := channelNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return "unknown"
}

// PartyType tells who is on either end of a message.
type PartyType int

const (
	UnknownParty PartyType = iota
	CustomerParty
	DriverParty
	SystemParty
	AgentParty
)

var partyNames = map[PartyType]string{
	CustomerParty: "customer",
	DriverParty:   "driver",
	SystemParty:   "system",
	AgentParty:    "agent",
}

func ParsePartyType(raw string) (PartyType, error) {
	for p, name := range partyNames {
		if name == raw {
			return p, nil
		}
	}
	return UnknownParty, errs.NewValueIsInvalidErrorWithCause("party type", fmt.Errorf("%q is not a valid party type", raw))
}

func (p PartyType) Validate() error {
	if _, ok := partyNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("party type", fmt.Errorf("%d is not a valid party type", p))
	}
	return nil
}

func (p PartyType) String() string {
	if name, ok := partyNames[p]; ok {
		return name
	}
	return "unknown"
}

// Party is one end of a message. ID is empty for the system or an agent role.
type Party struct {
	Type PartyType
	ID   *kernel.ID
}

// SystemSender is the sender of automated notices.
var SystemSender = Party{Type: SystemParty}

// Customer returns the party for a customer.
func Customer(id kernel.ID) Party { return Party{Type: CustomerParty, ID: &id} }

// Driver returns the party for a driver.
func Driver(id kernel.ID) Party { return Party{Type: DriverParty, ID: &id} }

// Message is a single logged communication, optionally about an order.
type Message struct {
	id       kernel.ID
	orderID  *kernel.ID
	sender   Party
	receiver Party
	body     string
	channel  Channel
	sentAt   time.Time

	guard guard.ConstructorGuard
}

// NewMessage validates a communication before it is logged.
//
// Example:
//
//	msg, err := message.NewMessage(&orderID, message.SystemSender, message.Customer(customerID),
//	    "Your order is on its way", message.SMS, time.Now())
func NewMessage(orderID *kernel.ID, sender, receiver Party, body string, channel Channel, sentAt time.Time) (*Message, error) {
	body = strings.TrimSpace(body)

	var err error
	if orderID != nil {
		if e := orderID.Validate(); e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("order id", e))
		}
	}
	if e := sender.Type.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("sender", e))
	}
	if e := receiver.Type.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("receiver", e))
	}
	if body == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("message"))
	}
	err = errors.Join(err, channel.Validate())
	if err != nil {
		return nil, err
	}

	return &Message{
		orderID:  orderID,
		sender:   sender,
		receiver: receiver,
		body:     body,
		channel:  channel,
		sentAt:   sentAt,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreMessage rehydrates a logged message.
func RestoreMessage(id kernel.ID, orderID *kernel.ID, sender, receiver Party, body string, channel Channel, sentAt time.Time) (*Message, error) {
	m, err := NewMessage(orderID, sender, receiver, body, channel, sentAt)
	if err != nil {
		return nil, err
	}
	if err = m.MarkPersisted(id); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) ID() kernel.ID       { return m.id }
func (m *Message) OrderID() *kernel.ID { return m.orderID }
func (m *Message) Sender() Party       { return m.sender }
func (m *Message) Receiver() Party     { return m.receiver }
func (m *Message) Body() string        { return m.body }
func (m *Message) Channel() Channel    { return m.channel }
func (m *Message) SentAt() time.Time   { return m.sentAt }
