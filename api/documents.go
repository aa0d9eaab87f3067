package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/demonid/crpt-go/errors"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/rate"
	"github.com/demonid/crpt-go/types"
)

const pathDocumentsCreate = "lk/documents/create"

// Documents implements the /api/v3/lk/documents API methods.
// Every call takes one slot from the shared limiter right before
// it is sent.
type Documents struct {
	api    *apiClient
	logger logger.Logger
}

func NewDocumentsApi(
	baseUrl string,
	httpClient *http.Client,
	logger logger.Logger,
	limiter rate.Limiter,
) *Documents {
	return &Documents{
		api:    newApiClient(baseUrl, httpClient, logger, limiter),
		logger: logger,
	}
}

// Create registers doc and returns the identifier the API assigned to it.
// signature is the detached signature of the document (Base64);
// token is the bearer token of the participant.
func (d *Documents) Create(
	ctx context.Context,
	doc *types.Document,
	productGroup types.ProductGroup,
	format types.DocumentFormat,
	signature string,
	token string,
) (uuid.UUID, error) {
	if err := validateCreate(doc, productGroup, format, signature, token); err != nil {
		return uuid.Nil, err
	}

	req, err := buildCreateRequest(doc, productGroup, format, signature)
	if err != nil {
		return uuid.Nil, err
	}

	var res types.CreateDocumentResponse
	path := pathDocumentsCreate + "?pg=" + url.QueryEscape(string(productGroup))
	if err := d.api.postJson(ctx, path, token, req, &res); err != nil {
		return uuid.Nil, err
	}

	id, parseErr := uuid.Parse(res.Value)
	if parseErr != nil {
		return uuid.Nil, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_INVALID_DATA,
			SourceErr:      fmt.Errorf("document id %q: %w", res.Value, parseErr),
			HttpStatusCode: http.StatusOK,
		}
	}

	d.logger.Infof("api: created document %s", id)
	return id, nil
}

func validateCreate(
	doc *types.Document,
	productGroup types.ProductGroup,
	format types.DocumentFormat,
	signature string,
	token string,
) error {
	var problem string
	switch {
	case doc == nil:
		problem = "document must not be nil"
	case !productGroup.IsKnown():
		problem = fmt.Sprintf("unknown product group %q", productGroup)
	case !format.IsKnown():
		problem = fmt.Sprintf("unknown document format %q", format)
	case strings.TrimSpace(token) == "":
		problem = "token cannot be empty"
	case strings.TrimSpace(signature) == "":
		problem = "signature cannot be empty"
	default:
		return nil
	}
	return &errors.ApiError{
		Stage:     errors.STAGE_BEFORE_REQUEST,
		Type:      errors.TYPE_INVALID_DATA,
		SourceErr: fmt.Errorf("%s", problem),
	}
}

func buildCreateRequest(
	doc *types.Document,
	productGroup types.ProductGroup,
	format types.DocumentFormat,
	signature string,
) (*types.CreateDocumentRequest, error) {
	docJson, err := json.Marshal(doc)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_JSON_PARSE,
			SourceErr: fmt.Errorf("failed to serialize document: %w", err),
		}
	}

	return &types.CreateDocumentRequest{
		DocumentFormat:  format,
		ProductDocument: base64.StdEncoding.EncodeToString(docJson),
		ProductGroup:    productGroup,
		Signature:       signature,
		Type:            doc.DocType,
	}, nil
}
