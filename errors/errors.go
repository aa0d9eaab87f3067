package errors

import (
	"errors"
	"fmt"
)

const (
	STAGE_BEFORE_REQUEST = "before-request"
	STAGE_REQUEST        = "request"
	STAGE_AFTER_REQUEST  = "after-request"

	TYPE_UNKNOWN      = "unknown"
	TYPE_JSON_PARSE   = "json"
	TYPE_REQUEST_PREP = "request-prep"
	TYPE_IO           = "io"
	TYPE_HTTP_STATUS  = "not-ok-http-status"
	TYPE_INVALID_DATA = "invalid-data"
	TYPE_RATE_LIMIT   = "rate-limit"
)

// ApiError describes a failed call to the document API:
// the stage it failed in, the kind of failure, and whatever
// the server returned.
type ApiError struct {
	Stage          string
	Type           string
	SourceErr      error
	Body           []byte
	HttpStatusCode int
}

var _ error = &ApiError{}

func (e *ApiError) Error() string {
	if e.Type == TYPE_HTTP_STATUS {
		return fmt.Sprintf(
			"http request to document API failed during '%s' stage: HTTP error: %d, body: %s",
			e.Stage, e.HttpStatusCode, string(e.Body),
		)
	}

	var err string
	if e.SourceErr != nil {
		err = e.SourceErr.Error()
	} else {
		err = string(e.Body)
	}
	return fmt.Sprintf(
		"http request to document API failed during '%s' stage with error type '%s', httpStatus: '%d'; original err: %v",
		e.Stage, e.Type, e.HttpStatusCode, err,
	)
}

// Is method is required by errors.Is() to properly distinguish between
// different types -vs- same pointer to the same type.
// Without it, errors.Is(err, &ApiError{}) returns false
// for any ApiError other than that exact pointer.
func (e *ApiError) Is(other error) bool {
	var err *ApiError
	return errors.As(other, &err) && err != nil
}

// Unwrap exposes SourceErr, so errors.Is(err, rate.ErrCancelled)
// and errors.Is(err, context.DeadlineExceeded) see through an ApiError.
func (e *ApiError) Unwrap() error {
	return e.SourceErr
}
