package logger

// Logger provides a standardized logging interface for the crpt-go client.
// It defines methods for different log levels (Debug, Info, Warn, Error) to enable
// consistent logging throughout the client library. This interface allows users
// to plug in their preferred logging implementation (e.g., zap via NewZap,
// the standard log package) or use the provided Noop logger to disable logging entirely.
//
// The logger is used throughout the client for:
// - API request/response debugging
// - Created document identifiers
// - Rate limiter anomalies
// - Asynchronous submission status and errors
//
// Usage Example:
//
//	// Using with zap
//	client, err := crpt_go.NewClient(time.Second, 1, 5, crpt_go.WithLogger(logger.NewZap(zapLogger)))
//
//	// Using with the rate limiter directly
//	limiter, err := rate.NewSlidingWindow(5, 1, time.Second, rate.WithLogger(myLogger))
//
//	// Disable logging entirely
//	client, err := crpt_go.NewClient(time.Second, 1, 5, crpt_go.WithLogger(&logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
