package crpt_go

import (
	"context"

	"github.com/demonid/crpt-go/batch"
	"github.com/demonid/crpt-go/logger"
)

type submitterConfig struct {
	// bufferSize determines the buffer size of the internal request channel
	// to prevent blocking on Add() calls
	// (maps to SubmitterConfig.MaxBufferSize)
	// default: 500
	bufferSize int

	// concurrency limits the number of documents being sent at once
	// (maps to SubmitterConfig.MaxConcurrent)
	// default: 10
	concurrency int

	// ctx is passed to every Create call
	// (maps to SubmitterConfig.Context)
	// default: context.Background()
	ctx context.Context

	// logger provides logging functionality for debugging
	// and monitoring submissions
	// (maps to SubmitterConfig.Logger)
	// default: logger.Noop
	logger logger.Logger

	// responseChan is an optional channel for receiving
	// submission results.
	// If nil - the caller won't get any responses
	// from the submitter.
	// default: nil
	responseChan chan<- batch.Response
}

func defaultSubmitterConfig() submitterConfig {
	return submitterConfig{
		bufferSize:   500,
		concurrency:  10,
		ctx:          context.Background(),
		logger:       logger.Noop{},
		responseChan: nil,
	}
}

type SubmitterConfigOption func(c *submitterConfig)

func WithSubmitterBufferSize(bufferSize int) SubmitterConfigOption {
	return func(c *submitterConfig) {
		c.bufferSize = bufferSize
	}
}

func WithSubmitterConcurrency(concurrency int) SubmitterConfigOption {
	return func(c *submitterConfig) {
		c.concurrency = concurrency
	}
}

func WithSubmitterContext(ctx context.Context) SubmitterConfigOption {
	return func(c *submitterConfig) {
		c.ctx = ctx
	}
}

func WithSubmitterLogger(logger logger.Logger) SubmitterConfigOption {
	return func(c *submitterConfig) {
		c.logger = logger
	}
}

func WithSubmitterResponseListener(res chan batch.Response) SubmitterConfigOption {
	return func(c *submitterConfig) {
		c.responseChan = res
	}
}
