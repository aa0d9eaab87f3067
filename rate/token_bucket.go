package rate

import (
	"context"
	"time"

	xrate "golang.org/x/time/rate"
)

// TokenBucket spreads limit operations evenly over the window,
// allowing a burst of up to limit. It refills continuously, so unlike
// SlidingWindow it may admit more than limit operations in some
// trailing window (at most 2*limit-1).
type TokenBucket struct {
	limiter *xrate.Limiter
	window  time.Duration
	limit   int
}

var _ Limiter = &TokenBucket{}

func NewTokenBucket(limit, interval int, unit time.Duration) (*TokenBucket, error) {
	window, err := windowOf(limit, interval, unit)
	if err != nil {
		return nil, err
	}

	every := window / time.Duration(limit)
	if every <= 0 {
		every = time.Nanosecond
	}
	return &TokenBucket{
		limiter: xrate.NewLimiter(xrate.Every(every), limit),
		window:  window,
		limit:   limit,
	}, nil
}

func (t *TokenBucket) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}
	if err := t.limiter.Wait(ctx); err != nil {
		// Wait also fails when the deadline would pass before a token
		// is available; ctx.Err() is still nil in that case.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelled(ctxErr)
		}
		return cancelled(err)
	}
	return nil
}

func (t *TokenBucket) Limit() int {
	return t.limit
}

func (t *TokenBucket) Window() time.Duration {
	return t.window
}
