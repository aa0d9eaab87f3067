package batch

import (
	"context"

	"github.com/demonid/crpt-go/logger"
)

type SubmitterConfig struct {
	// MaxBufferSize determines the buffer size of the internal request channel
	// to prevent blocking on Add() calls
	// default: 500
	MaxBufferSize int

	// MaxConcurrent limits the number of documents being sent
	// at the same time. The client's rate limiter still decides
	// when each of them may go out.
	// default: 10
	MaxConcurrent int

	// Context is passed to every Create call. Cancelling it
	// releases submissions blocked on the rate limiter;
	// they are reported with an error.
	// default: context.Background()
	Context context.Context

	// Logger provides logging functionality for debugging
	// and monitoring submissions
	// default: logger.Noop
	Logger logger.Logger
}

func defaultSubmitterConfig() SubmitterConfig {
	return SubmitterConfig{
		MaxBufferSize: 500,
		MaxConcurrent: 10,
		Context:       context.Background(),
		Logger:        &logger.Noop{},
	}
}

func applySubmitterConfig(inConfig SubmitterConfig) SubmitterConfig {
	outConfig := defaultSubmitterConfig()
	if inConfig.MaxBufferSize > 0 {
		outConfig.MaxBufferSize = inConfig.MaxBufferSize
	}
	if inConfig.MaxConcurrent > 0 {
		outConfig.MaxConcurrent = inConfig.MaxConcurrent
	}
	if inConfig.Context != nil {
		outConfig.Context = inConfig.Context
	}
	if inConfig.Logger != nil {
		outConfig.Logger = inConfig.Logger
	}
	return outConfig
}
