package types

import "github.com/google/uuid"

// Document is the product document submitted for registration.
// It is serialized to JSON and sent Base64 encoded inside
// CreateDocumentRequest.ProductDocument.
type Document struct {
	Description    *Description `json:"description"`
	DocId          *uuid.UUID   `json:"doc_id"`
	DocStatus      string       `json:"doc_status"`
	DocType        string       `json:"doc_type"`
	ImportRequest  bool         `json:"importRequest"`
	OwnerInn       string       `json:"owner_inn"`
	ParticipantInn string       `json:"participant_inn"`
	ProducerInn    string       `json:"producer_inn"`
	ProductionDate Date         `json:"production_date"`
	ProductionType string       `json:"production_type"`
	Products       []Product    `json:"products"`
	RegDate        Date         `json:"reg_date"`
	RegNumber      string       `json:"reg_number"`
}

type Description struct {
	ParticipantInn string `json:"participantInn"`
}

type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   Date   `json:"certificate_document_date"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerInn                  string `json:"owner_inn"`
	ProducerInn               string `json:"producer_inn"`
	ProductionDate            string `json:"production_date"`
	TnvedCode                 string `json:"tnved_code"`
	UitCode                   string `json:"uit_code"`
	UituCode                  string `json:"uitu_code"`
}

// CreateDocumentRequest is the body of POST /v3/lk/documents/create.
type CreateDocumentRequest struct {
	DocumentFormat  DocumentFormat `json:"document_format"`
	ProductDocument string         `json:"product_document"`
	ProductGroup    ProductGroup   `json:"product_group"`
	Signature       string         `json:"signature"`
	Type            string         `json:"type"`
}

// CreateDocumentResponse carries the identifier assigned to the new document.
type CreateDocumentResponse struct {
	Value string `json:"value"`
}
