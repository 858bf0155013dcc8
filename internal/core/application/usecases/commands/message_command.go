package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrLogMessageCommandIsNotConstructed = errors.New(
		"LogMessageCommand must be created via NewLogMessageCommand constructor",
	)
	ErrSendMessageCommandIsNotConstructed = errors.New(
		"SendMessageCommand must be created via NewSendMessageCommand constructor",
	)
)

// LogMessageCommand appends an entry to the communication log without
// sending anything.
type LogMessageCommand struct {
	orderID  *kernel.ID
	sender   message.Party
	receiver message.Party
	body     string
	channel  message.Channel

	guard guard.ConstructorGuard
}

func NewLogMessageCommand(
	orderID *kernel.ID,
	sender, receiver message.Party,
	body string,
	channel message.Channel,
) (LogMessageCommand, error) {
	body = strings.TrimSpace(body)
	if err := validateMessage(orderID, body, channel); err != nil {
		return LogMessageCommand{}, err
	}
	return LogMessageCommand{
		orderID:  orderID,
		sender:   sender,
		receiver: receiver,
		body:     body,
		channel:  channel,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LogMessageCommand) Validate() error {
	return c.guard.Validate(ErrLogMessageCommandIsNotConstructed)
}

func (c LogMessageCommand) OrderID() *kernel.ID      { return c.orderID }
func (c LogMessageCommand) Sender() message.Party    { return c.sender }
func (c LogMessageCommand) Receiver() message.Party  { return c.receiver }
func (c LogMessageCommand) Body() string             { return c.body }
func (c LogMessageCommand) Channel() message.Channel { return c.channel }

// SendMessageCommand publishes a notification and logs it. An unknown
// channel means email.
type SendMessageCommand struct {
	orderID   *kernel.ID
	sender    message.Party
	recipient message.Party
	channel   message.Channel
	subject   string
	body      string

	guard guard.ConstructorGuard
}

func NewSendMessageCommand(
	orderID *kernel.ID,
	sender, recipient message.Party,
	channel message.Channel,
	subject, body string,
) (SendMessageCommand, error) {
	if channel == message.UnknownChannel {
		channel = message.Email
	}
	body = strings.TrimSpace(body)
	if err := validateMessage(orderID, body, channel); err != nil {
		return SendMessageCommand{}, err
	}
	return SendMessageCommand{
		orderID:   orderID,
		sender:    sender,
		recipient: recipient,
		channel:   channel,
		subject:   strings.TrimSpace(subject),
		body:      body,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

func (c SendMessageCommand) OrderID() *kernel.ID      { return c.orderID }
func (c SendMessageCommand) Sender() message.Party    { return c.sender }
func (c SendMessageCommand) Recipient() message.Party { return c.recipient }
func (c SendMessageCommand) Channel() message.Channel { return c.channel }
func (c SendMessageCommand) Subject() string          { return c.subject }
func (c SendMessageCommand) Body() string             { return c.body }

func validateMessage(orderID *kernel.ID, body string, channel message.Channel) error {
	var err error
	if orderID != nil {
		err = errors.Join(err, orderID.Validate())
	}
	if body == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("message"))
	}
	return errors.Join(err, channel.Validate())
}
