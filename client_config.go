package crpt_go

import (
	"net/http"
	"time"

	"github.com/demonid/crpt-go/api"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/rate"
)

type config struct {
	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or if customers
	// want to add extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout sets the maximum duration for HTTP requests
	// before they are cancelled. Time spent waiting
	// for the rate limiter is not included.
	// default: 10 seconds
	timeout time.Duration

	// logger provides logging functionality for all internal
	// crpt-go client operations
	// default: logger.Noop
	logger logger.Logger

	// limiter replaces the sliding window built from
	// the NewClient arguments
	// default: nil
	limiter rate.Limiter

	// baseUrl is the API root, without the version segment
	// default: api.DefaultBaseUrl
	baseUrl string
}

func defaultConfig() *config {
	return &config{
		transport: http.DefaultTransport,
		timeout:   10 * time.Second,
		logger:    logger.Noop{},
		baseUrl:   api.DefaultBaseUrl,
	}
}

type ConfigOption func(c *config)

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(logger logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRateLimiter(limiter rate.Limiter) ConfigOption {
	return func(c *config) {
		c.limiter = limiter
	}
}

func WithBaseUrl(baseUrl string) ConfigOption {
	return func(c *config) {
		c.baseUrl = baseUrl
	}
}
