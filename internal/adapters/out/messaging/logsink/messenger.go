// Package logsink provides a Messenger that only writes to the log. It is the
// default outbound channel when no broker is configured.
package logsink

import (
	"context"
	"log/slog"

	"logistics/internal/core/ports"
)

type Messenger struct {
	logger *slog.Logger
}

func NewMessenger(logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{logger: logger.With("component", "messenger")}
}

// Send never fails.
func (m *Messenger) Send(ctx context.Context, n ports.Notification) error {
	attrs := []any{
		"channel", n.Channel.String(),
		"recipient", n.Recipient.Type.String(),
		"body", n.Body,
	}
	if n.Recipient.ID != nil {
		attrs = append(attrs, "recipient_id", n.Recipient.ID.Int64())
	}
	if n.OrderID != nil {
		attrs = append(attrs, "order_id", n.OrderID.Int64())
	}
	if n.Subject != "" {
		attrs = append(attrs, "subject", n.Subject)
	}
	m.logger.InfoContext(ctx, "notification sent", attrs...)
	return nil
}
