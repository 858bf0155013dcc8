// Package rabbitmq publishes notifications to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"logistics/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives every notification.
const DefaultExchange = "logistics.notifications"

// ErrPublishNacked is returned when the broker rejects a publication.
var ErrPublishNacked = errors.New("publish nacked by broker")

type Config struct {
	URL      string
	Exchange string
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements ports.Messenger. Publications are serialized so each
// confirmation matches the message just sent.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	acks     <-chan amqp.Confirmation
	exchange string
	mu       sync.Mutex
}

// Dial connects, declares the durable topic exchange and enables publisher confirms.
func Dial(cfg Config) (*Publisher, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{conn: conn, ch: ch, acks: acks, exchange: cfg.Exchange}, nil
}

// Send publishes the notification as persistent JSON and waits for the broker ack.
func (p *Publisher) Send(ctx context.Context, n ports.Notification) error {
	body, err := json.Marshal(newPayload(n))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey(n), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	select {
	case conf, ok := <-p.acks:
		if !ok {
			return errors.New("confirmation channel closed")
		}
		if !conf.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = errors.Join(err, p.ch.Close())
	}
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
