package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiError_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    *ApiError
		expect string
	}{
		{
			name: "http status",
			err: &ApiError{
				Stage:          STAGE_AFTER_REQUEST,
				Type:           TYPE_HTTP_STATUS,
				Body:           []byte(`{"error":"Internal Server Error"}`),
				HttpStatusCode: 500,
			},
			expect: `http request to document API failed during 'after-request' stage: HTTP error: 500, body: {"error":"Internal Server Error"}`,
		},
		{
			name: "source error",
			err: &ApiError{
				Stage:     STAGE_REQUEST,
				Type:      TYPE_IO,
				SourceErr: fmt.Errorf("connection reset"),
			},
			expect: "http request to document API failed during 'request' stage with error type 'io', httpStatus: '0'; original err: connection reset",
		},
		{
			name: "body only",
			err: &ApiError{
				Stage: STAGE_AFTER_REQUEST,
				Type:  TYPE_JSON_PARSE,
				Body:  []byte("not json"),
			},
			expect: "http request to document API failed during 'after-request' stage with error type 'json', httpStatus: '0'; original err: not json",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Error())
		})
	}
}

func TestApiError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ApiError{Type: TYPE_IO})
	assert.True(t, errors.Is(err, &ApiError{}))
	assert.True(t, errors.Is(errors.Join(&ApiError{}), &ApiError{}))
	assert.False(t, errors.Is(fmt.Errorf("plain"), &ApiError{}))
}

func TestApiError_Unwrap(t *testing.T) {
	err := &ApiError{
		Stage:     STAGE_BEFORE_REQUEST,
		Type:      TYPE_RATE_LIMIT,
		SourceErr: fmt.Errorf("acquire: %w", context.DeadlineExceeded),
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var apiErr *ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, TYPE_RATE_LIMIT, apiErr.Type)
}
