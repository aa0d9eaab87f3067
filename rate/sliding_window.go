package rate

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/demonid/crpt-go/logger"
)

// SlidingWindow admits at most limit operations within any trailing
// window. Admission times are kept oldest-first; an entry expires once
// its age reaches the window length.
//
// A SlidingWindow is safe for concurrent use. Blocked callers are not
// served in strict FIFO order, but every caller is eventually admitted:
// each window boundary frees at least one slot.
type SlidingWindow struct {
	limit  int
	window time.Duration
	clock  Clock
	logger logger.Logger

	mu         sync.Mutex
	timestamps *list.List

	anomalies atomic.Uint64
}

var _ Limiter = &SlidingWindow{}

// NewSlidingWindow creates a limiter allowing limit operations
// per interval*unit, e.g. NewSlidingWindow(5, 1, time.Second).
func NewSlidingWindow(limit, interval int, unit time.Duration, opts ...Option) (*SlidingWindow, error) {
	window, err := windowOf(limit, interval, unit)
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	return &SlidingWindow{
		limit:      limit,
		window:     window,
		clock:      cfg.clock,
		logger:     cfg.logger,
		timestamps: list.New(),
	}, nil
}

// Acquire blocks until a slot is free in the current window and takes it.
// The mutex is released while waiting, and the caller re-checks
// eligibility after every wake-up since other waiters may have taken
// the slot first.
func (l *SlidingWindow) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}

	for {
		l.mu.Lock()
		now := l.clock.Now()
		l.purge(now)

		if l.timestamps.Len() < l.limit {
			l.timestamps.PushBack(now)
			l.mu.Unlock()
			return nil
		}

		var wait time.Duration
		if oldest := l.timestamps.Front(); oldest != nil {
			wait = l.window - now.Sub(oldest.Value.(time.Time))
		} else {
			l.anomalies.Add(1)
			l.logger.Errorf(
				"rate.SlidingWindow: no oldest admission while at capacity; waiting a full window. limit=%d, window=%v",
				l.limit, l.window,
			)
			wait = l.window
		}
		l.mu.Unlock()

		if err := sleep(ctx, l.clock, wait); err != nil {
			return err
		}
	}
}

// purge drops every admission whose age is >= window.
// Must be called with mu held.
func (l *SlidingWindow) purge(now time.Time) {
	for e := l.timestamps.Front(); e != nil; e = l.timestamps.Front() {
		if now.Sub(e.Value.(time.Time)) < l.window {
			return
		}
		l.timestamps.Remove(e)
	}
}

// InUse returns the number of slots taken in the current window.
func (l *SlidingWindow) InUse() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge(l.clock.Now())
	return l.timestamps.Len()
}

// Anomalies returns how many times Acquire found the queue empty
// while at capacity.
func (l *SlidingWindow) Anomalies() uint64 {
	return l.anomalies.Load()
}

func (l *SlidingWindow) Limit() int {
	return l.limit
}

func (l *SlidingWindow) Window() time.Duration {
	return l.window
}
