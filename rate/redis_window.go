package rate

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/demonid/crpt-go/logger"
)

// slidingWindowScript purges expired admissions, then either admits
// ARGV[4] and returns 0, or returns the milliseconds until the oldest
// admission expires. -1 means the set was empty while at capacity.
//
// KEYS[1] - sorted set key
// ARGV[1] - now, unix ms
// ARGV[2] - window, ms
// ARGV[3] - limit
// ARGV[4] - member for this admission
// ARGV[5] - expiry cutoff, now - window
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[5])

if redis.call('ZCARD', key) < limit then
	redis.call('ZADD', key, ARGV[1], ARGV[4])
	redis.call('PEXPIRE', key, window)
	return 0
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if #oldest < 2 then
	return -1
end
return window - (now - tonumber(oldest[2]))
`)

// RedisWindow is a sliding window limiter whose admissions live in a
// Redis sorted set, so several processes can share one quota.
// Each admission is a member scored by its admission time in ms.
type RedisWindow struct {
	client redis.Scripter
	key    string
	limit  int
	window time.Duration
	clock  Clock
	logger logger.Logger

	anomalies atomic.Uint64
}

var _ Limiter = &RedisWindow{}

// NewRedisWindow creates a limiter sharing limit operations per
// interval*unit across every RedisWindow using the same key.
// The window must be at least one millisecond.
func NewRedisWindow(
	client redis.Scripter,
	key string,
	limit, interval int,
	unit time.Duration,
	opts ...Option,
) (*RedisWindow, error) {
	window, err := windowOf(limit, interval, unit)
	if err != nil {
		return nil, err
	}
	if window < time.Millisecond {
		return nil, fmt.Errorf("%w: window %v is shorter than 1ms", ErrInvalidArgument, window)
	}
	if client == nil || key == "" {
		return nil, fmt.Errorf("%w: redis client and key are required", ErrInvalidArgument)
	}
	cfg := applyOptions(opts)

	return &RedisWindow{
		client: client,
		key:    key,
		limit:  limit,
		window: window,
		clock:  cfg.clock,
		logger: cfg.logger,
	}, nil
}

// Acquire runs the admission script until it grants a slot.
// Redis errors are returned to the caller; the limiter does not retry them.
func (r *RedisWindow) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}

	member := uuid.NewString()
	windowMs := r.window.Milliseconds()
	for {
		now := r.clock.Now().UnixMilli()
		wait, err := slidingWindowScript.Run(
			ctx,
			r.client,
			[]string{r.key},
			now, windowMs, r.limit, member, now-windowMs,
		).Int64()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return cancelled(ctxErr)
			}
			return fmt.Errorf("rate: failed to run sliding window script for key %v: %w", r.key, err)
		}

		switch {
		case wait == 0:
			return nil
		case wait < 0:
			r.anomalies.Add(1)
			r.logger.Errorf(
				"rate.RedisWindow: empty window while at capacity; waiting a full window. key=%s, limit=%d, window=%v",
				r.key, r.limit, r.window,
			)
			wait = windowMs
		}

		if err := sleep(ctx, r.clock, time.Duration(wait)*time.Millisecond); err != nil {
			return err
		}
	}
}

// Anomalies returns how many times the script reported an empty
// window while at capacity.
func (r *RedisWindow) Anomalies() uint64 {
	return r.anomalies.Load()
}

func (r *RedisWindow) Limit() int {
	return r.limit
}

func (r *RedisWindow) Window() time.Duration {
	return r.window
}
