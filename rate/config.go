package rate

import (
	"github.com/demonid/crpt-go/logger"
)

type config struct {
	// clock is the time source used to stamp admissions
	// and to wait for a slot to free up.
	// TokenBucket ignores it.
	// default: SystemClock()
	clock Clock

	// logger reports anomalies found while waiting for a slot
	// default: logger.Noop
	logger logger.Logger
}

func defaultConfig() config {
	return config{
		clock:  SystemClock(),
		logger: logger.Noop{},
	}
}

type Option func(c *config)

func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
