package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/demonid/crpt-go/errors"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/rate"
)

const (
	DefaultBaseUrl = "https://ismp.crpt.ru/api"
	apiVersion     = "v3"
)

type apiClient struct {
	baseUrl    string
	httpClient *http.Client
	logger     logger.Logger
	limiter    rate.Limiter
}

func newApiClient(
	baseUrl string,
	httpClient *http.Client,
	logger logger.Logger,
	limiter rate.Limiter,
) *apiClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &apiClient{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		httpClient: httpClient,
		logger:     logger,
		limiter:    limiter,
	}
}

func (c *apiClient) postJson(
	ctx context.Context,
	path string,
	token string,
	reqData any,
	resData any,
) *errors.ApiError {
	body, err := c.send(
		ctx,
		http.MethodPost,
		path,
		token,
		reqData,
	)
	if err != nil {
		return err
	}
	jsonErr := json.Unmarshal(body, resData)
	if jsonErr != nil {
		return &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      jsonErr,
			Body:           body,
			HttpStatusCode: http.StatusOK,
		}
	}
	return nil
}

// send performs exactly one rate-limited HTTP exchange.
// A slot is acquired only once the request is fully prepared,
// so malformed requests never consume quota.
func (c *apiClient) send(
	ctx context.Context,
	httpMethod string,
	path string,
	token string,
	reqData any,
) ([]byte, *errors.ApiError) {
	endpoint := c.baseUrl + "/" + apiVersion + "/" + path

	var body io.Reader
	if reqData != nil {
		data, jsonErr := json.Marshal(reqData)
		if jsonErr != nil {
			return nil, &errors.ApiError{
				Stage:     errors.STAGE_BEFORE_REQUEST,
				Type:      errors.TYPE_JSON_PARSE,
				SourceErr: jsonErr,
			}
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, body)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_REQUEST_PREP,
			SourceErr: err,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_RATE_LIMIT,
			SourceErr: err,
		}
	}

	c.logger.Debugf("api: %s %s", httpMethod, endpoint)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_REQUEST,
			Type:      errors.TYPE_IO,
			SourceErr: err,
		}
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Errorf("api: HTTP error: %d, body: %s", res.StatusCode, string(resBody))
		return resBody, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_HTTP_STATUS,
			Body:           resBody,
			HttpStatusCode: res.StatusCode,
			SourceErr:      err,
		}
	}
	if err != nil {
		return resBody, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_IO,
			Body:           resBody,
			HttpStatusCode: res.StatusCode,
			SourceErr:      err,
		}
	}

	return resBody, nil
}

// toNilErr converts a *errors.ApiError type to be a true nil interface.
// Internally, a Go interface has a Type and Value.
// An interface value is nil only if the V and T are both unset.
// See: https://go.dev/doc/faq#nil_error
func toNilErr[T any](r T, e *errors.ApiError) (T, error) {
	if e != nil {
		return r, e
	}
	return r, nil
}
