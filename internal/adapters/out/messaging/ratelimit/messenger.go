// Package ratelimit throttles a Messenger with a token bucket.
package ratelimit

import (
	"context"
	"fmt"

	"logistics/internal/core/ports"

	"golang.org/x/time/rate"
)

// Messenger forwards to next at no more than the configured rate. Send blocks
// until a token is available or ctx is done.
type Messenger struct {
	next    ports.Messenger
	limiter *rate.Limiter
}

// NewMessenger allows perSecond sends per second with the given burst. A
// non-positive perSecond disables throttling.
func NewMessenger(next ports.Messenger, perSecond float64, burst int) *Messenger {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Messenger{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (m *Messenger) Send(ctx context.Context, n ports.Notification) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return m.next.Send(ctx, n)
}
