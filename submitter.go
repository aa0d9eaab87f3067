package crpt_go

import (
	"github.com/demonid/crpt-go/batch"
)

// Submitter queues documents and sends them in the background
// through the client's Documents API.
type Submitter struct {
	config    submitterConfig
	documents batch.Submitter
}

func NewSubmitter(client *Client, opts ...SubmitterConfigOption) *Submitter {
	sConfig := defaultSubmitterConfig()
	for _, o := range opts {
		o(&sConfig)
	}

	return &Submitter{
		config: sConfig,
		documents: batch.NewSubmitter(
			client.Documents(),
			sConfig.responseChan,
			batch.SubmitterConfig{
				MaxBufferSize: sConfig.bufferSize,
				MaxConcurrent: sConfig.concurrency,
				Context:       sConfig.ctx,
				Logger:        sConfig.logger,
			},
		),
	}
}

func (s *Submitter) Documents() batch.Submitter {
	return s.documents
}

func (s *Submitter) Start() {
	s.documents.Start()
}

func (s *Submitter) Stop() {
	s.documents.Stop()
}
