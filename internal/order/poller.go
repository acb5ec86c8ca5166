package order

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc loads the current view of a tracked order.
type FetchFunc func(ctx context.Context) (Order, error)

// Poller re-fetches an order until a terminal status is observed or the
// context is cancelled. With Backoff set the interval doubles after each
// poll up to MaxInterval; otherwise it stays fixed.
type Poller struct {
	Interval    time.Duration
	Backoff     bool
	MaxInterval time.Duration
}

// Watch starts polling and sends every fetched order on the returned
// channel. The channel closes once polling stops. Fetch errors are logged
// and the poll retried on the next tick; they never end the watch.
func (p Poller) Watch(ctx context.Context, fetch FetchFunc) <-chan Order {
	interval := p.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	maxInterval := p.MaxInterval
	if maxInterval <= 0 {
		maxInterval = time.Minute
	}

	updates := make(chan Order)
	go func() {
		defer close(updates)

		wait := interval
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			ord, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("order poll failed", "err", err)
			} else {
				select {
				case updates <- ord:
				case <-ctx.Done():
					return
				}
				if ord.Status.Terminal() {
					return
				}
			}

			timer.Reset(wait)
			if p.Backoff {
				wait *= 2
				if wait > maxInterval {
					wait = maxInterval
				}
			}
		}
	}()

	return updates
}
