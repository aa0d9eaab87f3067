package batch

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/demonid/crpt-go/logger"
)

// Submitter sends queued documents in the background.
// Documents are sent one request each, by up to MaxConcurrent
// goroutines; all of them share the client's rate limiter, so the
// submitter never exceeds the configured request rate.
//
// Usage Example:
//
//	responses := make(chan batch.Response, 100)
//	submitter := batch.NewSubmitter(client.Documents(), responses, batch.SubmitterConfig{
//	    MaxConcurrent: 4,
//	})
//
//	submitter.Start()
//	submitter.Add(message1)
//	submitter.Add(message2)
//
//	// Stop waits for every queued document to be sent
//	submitter.Stop()
type Submitter interface {
	// Start begins draining the queue.
	// This method is idempotent - calling Start() multiple times
	// has no effect if already running.
	Start()

	// Stop closes the queue and waits until every queued document
	// has been sent and its Response delivered.
	// This method is idempotent - calling Stop() multiple times
	// has no effect if already stopped.
	Stop()

	// Add queues a document for submission.
	// This method is thread-safe and will block if the internal buffer is full.
	Add(req Message)
}

type submitter struct {
	creator  Creator
	reqChan  chan Message
	respChan chan<- Response
	config   SubmitterConfig
	logger   logger.Logger
	listener sync.WaitGroup
	sends    errgroup.Group
	mu       sync.RWMutex
	running  bool
}

var _ Submitter = &submitter{}

func NewSubmitter(
	creator Creator,
	respChan chan<- Response,
	config SubmitterConfig,
) Submitter {
	config = applySubmitterConfig(config)

	return &submitter{
		creator:  creator,
		reqChan:  make(chan Message, config.MaxBufferSize),
		respChan: respChan,
		config:   config,
		logger:   config.Logger,
	}
}

func (s *submitter) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.sends.SetLimit(s.config.MaxConcurrent)
	s.listener.Add(1)
	go func() {
		defer s.listener.Done()
		s.listen(s.reqChan)
	}()
	s.running = true
}

func (s *submitter) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	// initiate exit from the "listen" loop
	close(s.reqChan)
	s.listener.Wait()

	// wait for all in-flight sends to finish
	if err := s.sends.Wait(); err != nil {
		s.logger.Errorf("batch.Submitter: failed to wait for all in-flight requests: %v", err)
	}

	// override reqChan to handle a Start->Stop->Start case
	// as next call to Add() will panic if the channel is closed
	s.reqChan = make(chan Message, s.config.MaxBufferSize)
	s.running = false
	s.logger.Debugf("batch.Submitter: sent last document")
}

func (s *submitter) Add(req Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.reqChan <- req
}

func (s *submitter) listen(reqChan <-chan Message) {
	s.logger.Debugf("batch.Submitter: listening...")

	for req := range reqChan {
		s.sends.Go(func() error {
			s.send(req)
			return nil
		})
	}
}

func (s *submitter) send(req Message) {
	id, err := s.creator.Create(
		s.config.Context,
		req.Document,
		req.ProductGroup,
		req.Format,
		req.Signature,
		req.Token,
	)
	if err != nil {
		s.logger.Warnf("batch.Submitter: failed to create document: %v", err)
	}

	if s.respChan != nil {
		s.respChan <- Response{
			DocumentId:  id,
			OriginalReq: req,
			Error:       err,
		}
	}
}
