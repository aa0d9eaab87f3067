package rate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidArgument is returned by constructors when the limit
	// or the interval is not positive.
	ErrInvalidArgument = errors.New("rate: limit and interval must be positive")

	// ErrMissingUnit is returned by constructors when no time unit is given.
	ErrMissingUnit = errors.New("rate: time unit must be specified")

	// ErrCancelled is returned by Acquire when the caller's context is done
	// before a slot was granted. The error also wraps ctx.Err().
	ErrCancelled = errors.New("rate: acquire cancelled")
)

// Limiter controls request rates to the document API.
//
// The Limiter interface provides admission control to prevent
// exceeding the API's request quota. Implementations can use different
// strategies such as:
//   - Sliding window counting (SlidingWindow, RedisWindow)
//   - Token bucket algorithm (TokenBucket)
//   - No limiting at all (NoopLimiter)
//
// Example usage:
//
//	limiter, err := rate.NewSlidingWindow(5, 1, time.Second)
//	if err != nil {
//	    return err
//	}
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err // ctx was cancelled, no slot was taken
//	}
//	// perform exactly one rate-limited operation
//
// Acquire is called before each request and blocks until the request
// is allowed to proceed.
type Limiter interface {
	// Acquire blocks until one admission slot is reserved for the caller.
	// It returns an error matching ErrCancelled if ctx is done first;
	// in that case no slot is held.
	Acquire(ctx context.Context) error
}

// windowOf validates the constructor arguments shared by all
// window based limiters and returns the window length.
func windowOf(limit, interval int, unit time.Duration) (time.Duration, error) {
	if limit <= 0 || interval <= 0 {
		return 0, fmt.Errorf("%w: limit=%d, interval=%d", ErrInvalidArgument, limit, interval)
	}
	if unit == 0 {
		return 0, ErrMissingUnit
	}
	if unit < 0 {
		return 0, fmt.Errorf("%w: unit=%v", ErrInvalidArgument, unit)
	}
	if int64(interval) > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %d x %v overflows", ErrInvalidArgument, interval, unit)
	}
	return time.Duration(interval) * unit, nil
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// sleep waits for d on clock c, or until ctx is done.
func sleep(ctx context.Context, c Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return cancelled(ctx.Err())
	case <-c.After(d):
		return nil
	}
}
