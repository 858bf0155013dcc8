package rabbitmq

import (
	"time"

	"logistics/internal/core/ports"
)

// Payload is the JSON body of a published notification.
type Payload struct {
	OrderID       *int64    `json:"order_id,omitempty"`
	RecipientType string    `json:"recipient_type"`
	RecipientID   *int64    `json:"recipient_id,omitempty"`
	Channel       string    `json:"channel"`
	Subject       string    `json:"subject,omitempty"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

func newPayload(n ports.Notification) Payload {
	p := Payload{
		RecipientType: n.Recipient.Type.String(),
		Channel:       n.Channel.String(),
		Subject:       n.Subject,
		Body:          n.Body,
		CreatedAt:     n.CreatedAt.UTC(),
	}
	if n.OrderID != nil {
		id := n.OrderID.Int64()
		p.OrderID = &id
	}
	if n.Recipient.ID != nil {
		id := n.Recipient.ID.Int64()
		p.RecipientID = &id
	}
	return p
}

// routingKey routes by channel, e.g. notification.sms.
func routingKey(n ports.Notification) string {
	return "notification." + n.Channel.String()
}
