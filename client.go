package crpt_go

import (
	"net/http"
	"time"

	"github.com/demonid/crpt-go/api"
	"github.com/demonid/crpt-go/rate"
)

type Client struct {
	httpClient *http.Client
	limiter    rate.Limiter

	documents *api.Documents
}

// NewClient creates a client that sends at most limit requests
// per interval*unit, e.g. NewClient(time.Second, 1, 5).
// Construction fails if the limit or interval is not positive
// or the unit is missing, unless WithRateLimiter supplies a limiter.
func NewClient(unit time.Duration, interval int, limit int, opts ...ConfigOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	limiter := cfg.limiter
	if limiter == nil {
		window, err := rate.NewSlidingWindow(
			limit, interval, unit,
			rate.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, err
		}
		limiter = window
	}

	httpClient := &http.Client{}
	httpClient.Transport = cfg.transport
	httpClient.Timeout = cfg.timeout

	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		documents:  api.NewDocumentsApi(cfg.baseUrl, httpClient, cfg.logger, limiter),
	}, nil
}

func (c *Client) Documents() *api.Documents {
	return c.documents
}

// Limiter returns the limiter shared by every API of this client.
func (c *Client) Limiter() rate.Limiter {
	return c.limiter
}
