// Package messagerepo persists the append-only messages log.
package messagerepo

import (
	"time"

	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
)

// MessageDTO is the row of the messages table.
type MessageDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	OrderID      *int64 `gorm:"index"`
	SenderType   string `gorm:"size:20;not null"`
	SenderID     *int64
	ReceiverType string `gorm:"size:20;not null"`
	ReceiverID   *int64
	Message      string    `gorm:"type:text;not null"`
	Channel      string    `gorm:"size:20;not null"`
	SentAt       time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (MessageDTO) TableName() string {
	return "messages"
}

func fields(m *message.Message) table.Fields {
	return table.Fields{
		"order_id":      kernel.RawOptionalID(m.OrderID()),
		"sender_type":   m.Sender().Type.String(),
		"sender_id":     kernel.RawOptionalID(m.Sender().ID),
		"receiver_type": m.Receiver().Type.String(),
		"receiver_id":   kernel.RawOptionalID(m.Receiver().ID),
		"message":       m.Body(),
		"channel":       m.Channel().String(),
		"sent_at":       m.SentAt(),
	}
}

func toDomain(dto MessageDTO) (*message.Message, error) {
	senderType, err := message.ParsePartyType(dto.SenderType)
	if err != nil {
		return nil, err
	}
	receiverType, err := message.ParsePartyType(dto.ReceiverType)
	if err != nil {
		return nil, err
	}
	channel, err := message.ParseChannel(dto.Channel)
	if err != nil {
		return nil, err
	}

	return message.RestoreMessage(
		kernel.ID(dto.ID),
		kernel.OptionalID(dto.OrderID),
		message.Party{Type: senderType, ID: kernel.OptionalID(dto.SenderID)},
		message.Party{Type: receiverType, ID: kernel.OptionalID(dto.ReceiverID)},
		dto.Message,
		channel,
		dto.SentAt,
	)
}
