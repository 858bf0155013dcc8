package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	acks      chan amqp.Confirmation
	ack       bool
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)
	f.acks <- amqp.Confirmation{DeliveryTag: uint64(len(f.published)), Ack: f.ack}
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func newTestPublisher(ack bool) (*Publisher, *fakeChannel) {
	fc := &fakeChannel{acks: make(chan amqp.Confirmation, 1), ack: ack}
	return &Publisher{ch: fc, acks: fc.acks, exchange: DefaultExchange}, fc
}

func testNotification() ports.Notification {
	orderID := kernel.ID(12)
	return ports.Notification{
		OrderID:   &orderID,
		Recipient: message.Customer(3),
		Channel:   message.SMS,
		Body:      "Your parcel is on its way",
		CreatedAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Send(t *testing.T) {
	p, fc := newTestPublisher(true)

	require.NoError(t, p.Send(testContext(t), testNotification()))

	require.Len(t, fc.published, 1)
	assert.Equal(t, "notification.sms", fc.keys[0])
	assert.Equal(t, amqp.Persistent, fc.published[0].DeliveryMode)
	assert.Equal(t, "application/json", fc.published[0].ContentType)

	var payload Payload
	require.NoError(t, json.Unmarshal(fc.published[0].Body, &payload))
	assert.Equal(t, int64(12), *payload.OrderID)
	assert.Equal(t, "customer", payload.RecipientType)
	assert.Equal(t, int64(3), *payload.RecipientID)
	assert.Equal(t, "Your parcel is on its way", payload.Body)
}

func TestPublisher_Send_Nack(t *testing.T) {
	p, _ := newTestPublisher(false)
	require.ErrorIs(t, p.Send(testContext(t), testNotification()), ErrPublishNacked)
}

func TestPublisher_Send_PublishError(t *testing.T) {
	p, fc := newTestPublisher(true)
	fc.err = errors.New("channel closed")

	err := p.Send(testContext(t), testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestPublisher_Send_ContextCancelledWhileAwaitingConfirm(t *testing.T) {
	fc := &fakeChannel{acks: make(chan amqp.Confirmation, 1), ack: true}
	p := &Publisher{ch: fc, acks: make(chan amqp.Confirmation), exchange: DefaultExchange}

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	require.ErrorIs(t, p.Send(ctx, testNotification()), context.Canceled)
}
