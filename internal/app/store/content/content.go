// internal/app/store/content/content.go

// Package content is the data-access orchestrator for the site's content
// types. It reads through a docstore.Client, substitutes bundled
// placeholder content where the registry allows it, and keeps per-type
// shared state (items, loading flag) plus one last-error slot that any
// number of consumers may read or subscribe to.
//
// Reads never fail: a store failure or a read that outlives the fetch
// timeout resolves to fallback or empty content. Writes return their
// errors and only touch local state after the store confirms them.
package content

import (
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	settingsstore "github.com/dalemusser/researchhub/internal/app/store/settings"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ErrMissingID is returned by Update and Delete when no id is given.
var ErrMissingID = errors.New("missing document id")

// Source tags which data a fetch resolved to.
type Source int

const (
	// SourceEmpty is an honest empty list: no live documents and no
	// permitted placeholder content.
	SourceEmpty Source = iota
	// SourceLive is data read from the store.
	SourceLive
	// SourceFallback is bundled placeholder content.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceFallback:
		return "fallback"
	}
	return "empty"
}

// Result is the tagged outcome of a fetch. Err holds the absorbed store
// failure, if there was one; it is informational only.
type Result struct {
	EntityType registry.EntityType
	Items      []docstore.Document
	Source     Source
	Err        error
}

// State is a point-in-time copy of one type's shared state.
type State struct {
	Items     []docstore.Document
	Source    Source
	IsLoading bool
}

// typeState is the shared state of one entity type. issued and applied are
// request tokens: a fetch response only lands if no newer fetch or local
// mutation has landed since it was issued.
type typeState struct {
	items    []docstore.Document
	source   Source
	issued   uint64
	applied  uint64
	inflight int
	subs     map[int]chan []docstore.Document
}

// Store is the orchestrator. Create one per process and share it.
type Store struct {
	docs     docstore.Client
	settings *settingsstore.Store
	log      *zap.Logger

	fetchTimeout time.Duration
	now          docstore.Clock

	mu      sync.Mutex
	state   map[registry.EntityType]*typeState
	lastErr error
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithFetchTimeout overrides the bounded wait applied to every fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithClock sets the clock used for locally synthesized timestamps.
func WithClock(c docstore.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

// New creates a Store over docs.
func New(docs docstore.Client, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		docs:         docs,
		settings:     settingsstore.New(docs),
		log:          logger,
		fetchTimeout: timeouts.Fetch(),
		now:          time.Now,
		state:        make(map[registry.EntityType]*typeState),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Docs returns the underlying document client (health checks use it).
func (s *Store) Docs() docstore.Client {
	return s.docs
}

// stateFor returns t's state, creating it. Callers hold s.mu.
func (s *Store) stateFor(t registry.EntityType) *typeState {
	st, ok := s.state[t]
	if !ok {
		st = &typeState{items: []docstore.Document{}, subs: make(map[int]chan []docstore.Document)}
		s.state[t] = st
	}
	return st
}

// Items returns a copy of t's current collection.
func (s *Store) Items(t registry.EntityType) []docstore.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return docstore.CloneAll(s.stateFor(t).items)
}

// IsLoading reports whether any fetch for t is in flight.
func (s *Store) IsLoading(t registry.EntityType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateFor(t).inflight > 0
}

// Snapshot returns a copy of t's whole state.
func (s *Store) Snapshot(t registry.EntityType) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(t)
	return State{
		Items:     docstore.CloneAll(st.items),
		Source:    st.source,
		IsLoading: st.inflight > 0,
	}
}

// LastError returns the most recent failure recorded by any operation, or
// nil. It stays set until ClearError.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError resets LastError.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Subscribe returns a channel that receives a copy of t's collection every
// time it changes. Slow receivers only ever see the latest value. Call
// cancel to stop receiving; the channel is then closed.
func (s *Store) Subscribe(t registry.EntityType) (<-chan []docstore.Document, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan []docstore.Document, 1)
	s.stateFor(t).subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			st := s.stateFor(t)
			if c, ok := st.subs[id]; ok {
				delete(st.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// publish replaces t's items and notifies subscribers. Callers hold s.mu.
func (s *Store) publish(st *typeState, items []docstore.Document, src Source) {
	st.items = items
	st.source = src
	for _, ch := range st.subs {
		select {
		case <-ch:
		default:
		}
		ch <- docstore.CloneAll(items)
	}
}
