package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
)

// Notification is an outbound message handed to a Messenger.
type Notification struct {
	OrderID   *kernel.ID
	Recipient message.Party
	Channel   message.Channel
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Messenger publishes notifications to an outbound channel. Send returns an
// error when the notification could not be handed off; callers retry later.
type Messenger interface {
	Send(ctx context.Context, n Notification) error
}
