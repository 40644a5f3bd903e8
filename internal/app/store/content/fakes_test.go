package content_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
)

var errBackend = errors.New("permission denied")

// failingClient rejects every call.
type failingClient struct{}

func (failingClient) Query(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	return nil, errBackend
}
func (failingClient) Create(context.Context, string, docstore.Document) (docstore.Document, error) {
	return nil, errBackend
}
func (failingClient) Update(context.Context, string, string, docstore.Document) error {
	return errBackend
}
func (failingClient) Delete(context.Context, string, string) error { return errBackend }
func (failingClient) Ping(context.Context) error                   { return errBackend }

// hangingClient never answers a query until released, and ignores ctx.
type hangingClient struct {
	failingClient
	release chan struct{}
}

func newHangingClient() *hangingClient {
	return &hangingClient{release: make(chan struct{})}
}

func (h *hangingClient) Query(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	<-h.release
	return []docstore.Document{{"id": "late"}}, nil
}

// recordingClient captures write payloads and answers like a store that
// assigns ids but no timestamps.
type recordingClient struct {
	failingClient

	mu      sync.Mutex
	created []docstore.Document
	updated []docstore.Document
	queries []docstore.Query
}

func (r *recordingClient) Query(_ context.Context, _ string, q docstore.Query) ([]docstore.Document, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return []docstore.Document{}, nil
}

func (r *recordingClient) Create(_ context.Context, _ string, fields docstore.Document) (docstore.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, fields.Clone())
	out := fields.Clone()
	out["id"] = "rec-1"
	return out, nil
}

func (r *recordingClient) Update(_ context.Context, _ string, _ string, fields docstore.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, fields.Clone())
	return nil
}

// scriptedClient answers the nth query with responses[n], first waiting on
// gates[n] when one is set.
type scriptedClient struct {
	failingClient

	mu        sync.Mutex
	calls     int
	responses [][]docstore.Document
	gates     map[int]chan struct{}
	started   chan int
}

func (s *scriptedClient) Query(context.Context, string, docstore.Query) ([]docstore.Document, error) {
	s.mu.Lock()
	n := s.calls
	s.calls++
	gate := s.gates[n]
	s.mu.Unlock()

	if s.started != nil {
		s.started <- n
	}
	if gate != nil {
		<-gate
	}
	return docstore.CloneAll(s.responses[n]), nil
}
