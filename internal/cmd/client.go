package cmd

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	crpt "github.com/demonid/crpt-go"
	"github.com/demonid/crpt-go/internal/config"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/rate"
)

// newLogger builds a development logger for debug level
// and a production (JSON) logger otherwise.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid logging.level: %w", err)
	}

	var zc zap.Config
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// newLimiter builds the limiter selected by rate.backend.
// The returned close func releases backend connections.
func newLimiter(cfg *config.Config, log logger.Logger) (rate.Limiter, func() error, error) {
	noClose := func() error { return nil }

	unit, err := config.ParseUnit(cfg.Rate.Unit)
	if err != nil {
		return nil, noClose, err
	}

	switch cfg.Rate.Backend {
	case config.BackendTokenBucket:
		l, err := rate.NewTokenBucket(cfg.Rate.Limit, cfg.Rate.Interval, unit)
		return l, noClose, err
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		l, err := rate.NewRedisWindow(
			client, cfg.Redis.Key,
			cfg.Rate.Limit, cfg.Rate.Interval, unit,
			rate.WithLogger(log),
		)
		if err != nil {
			_ = client.Close()
			return nil, noClose, err
		}
		return l, client.Close, nil
	default:
		l, err := rate.NewSlidingWindow(
			cfg.Rate.Limit, cfg.Rate.Interval, unit,
			rate.WithLogger(log),
		)
		return l, noClose, err
	}
}

func newClient(cfg *config.Config, log logger.Logger) (*crpt.Client, func() error, error) {
	limiter, closeLimiter, err := newLimiter(cfg, log)
	if err != nil {
		return nil, closeLimiter, err
	}

	client, err := crpt.NewClient(
		0, 0, 0,
		crpt.WithRateLimiter(limiter),
		crpt.WithBaseUrl(cfg.BaseUrl),
		crpt.WithTimeout(cfg.Timeout),
		crpt.WithLogger(log),
	)
	if err != nil {
		_ = closeLimiter()
		return nil, func() error { return nil }, err
	}
	return client, closeLimiter, nil
}
