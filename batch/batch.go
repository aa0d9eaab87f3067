package batch

import (
	"context"

	"github.com/google/uuid"

	"github.com/demonid/crpt-go/types"
)

// Message is one document submission queued on a Submitter.
//
// Usage Example:
//
//	message := batch.Message{
//	    Document:     doc,
//	    ProductGroup: types.ProductGroupShoes,
//	    Format:       types.DocumentFormatManual,
//	    Signature:    signature,
//	    Token:        token,
//	    MetaData:     "invoice-42", // Optional tracking identifier
//	}
//	submitter.Add(message)
type Message struct {
	Document     *types.Document
	ProductGroup types.ProductGroup
	Format       types.DocumentFormat
	Signature    string
	Token        string

	// MetaData holds optional contextual information that
	// can be used for tracking, correlation, or response handling
	MetaData any
}

// Response is the outcome of one submitted Message.
type Response struct {
	// DocumentId is the identifier assigned by the API,
	// or uuid.Nil if an error occurred
	DocumentId uuid.UUID
	// OriginalReq holds a reference to the original Message that was processed
	OriginalReq Message
	// Error contains any error that occurred during processing
	// or nil if successful
	Error error
}

// Creator sends a single document. *api.Documents implements it.
type Creator interface {
	Create(
		ctx context.Context,
		doc *types.Document,
		productGroup types.ProductGroup,
		format types.DocumentFormat,
		signature string,
		token string,
	) (uuid.UUID, error)
}
