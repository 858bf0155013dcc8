package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/ports"
)

// LogMessageCommandHandler appends to the communication log.
type LogMessageCommandHandler struct {
	uowFactory MessageUoWFactory
}

func NewLogMessageCommandHandler(uowFactory MessageUoWFactory) LogMessageCommandHandler {
	return LogMessageCommandHandler{uowFactory: uowFactory}
}

func (h LogMessageCommandHandler) Handle(ctx context.Context, cmd LogMessageCommand) (*message.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	msg, err := message.NewMessage(cmd.OrderID(), cmd.Sender(), cmd.Receiver(), cmd.Body(), cmd.Channel(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = appendMessage(ctx, h.uowFactory, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SendMessageCommandHandler publishes through the Messenger first and logs
// the message only once the hand-off succeeded, so the log never claims a
// message that was not sent. A failed log after a successful send is
// returned as an error; the caller may retry and send twice.
type SendMessageCommandHandler struct {
	uowFactory MessageUoWFactory
	messenger  ports.Messenger
}

func NewSendMessageCommandHandler(uowFactory MessageUoWFactory, messenger ports.Messenger) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		messenger:  messenger,
	}
}

func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*message.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg, err := message.NewMessage(cmd.OrderID(), cmd.Sender(), cmd.Recipient(), cmd.Body(), cmd.Channel(), now)
	if err != nil {
		return nil, err
	}

	if err = h.messenger.Send(ctx, ports.Notification{
		OrderID:   cmd.OrderID(),
		Recipient: cmd.Recipient(),
		Channel:   cmd.Channel(),
		Subject:   cmd.Subject(),
		Body:      cmd.Body(),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("send %s message: %w", cmd.Channel(), err)
	}

	if err = appendMessage(ctx, h.uowFactory, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func appendMessage(ctx context.Context, uowFactory MessageUoWFactory, msg *message.Message) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.MessageRepository().Add(ctx, msg); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
