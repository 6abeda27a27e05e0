package source

import (
	"context"
	"math/rand"
	"time"
)

// Backoff spaces out serial reconnect attempts: the delay doubles after each
// failed open or read, up to max, and drops back to the initial delay once a
// port delivers data again.
type Backoff struct {
	initial, max time.Duration
	next         time.Duration
}

func NewBackoff(initial, max time.Duration) *Backoff {
	return &Backoff{initial: initial, max: max, next: initial}
}

// Wait blocks for the pending delay, spread by up to 20% either way, and
// doubles it for the next attempt. It returns ctx.Err() if ctx ends first.
func (b *Backoff) Wait(ctx context.Context) error {
	delay := spread(b.next)
	b.next = min(2*b.next, b.max)

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Backoff) Reset() { b.next = b.initial }

// Current is the delay the next Wait will use, before spreading.
func (b *Backoff) Current() time.Duration { return b.next }

func spread(d time.Duration) time.Duration {
	f := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(d) * f)
}
