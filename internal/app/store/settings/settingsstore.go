// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
)

// Store provides access to the settings singleton: the first document in
// the settings collection. Saves are serialized so two concurrent first
// saves cannot both create a document.
type Store struct {
	docs docstore.Client
	coll string
	now  docstore.Clock

	mu sync.Mutex
}

// New creates a new settings store.
func New(docs docstore.Client) *Store {
	return &Store{
		docs: docs,
		coll: registry.PhysicalName(registry.Settings),
		now:  time.Now,
	}
}

// First returns the settings document, or ok=false if none exists yet.
func (s *Store) First(ctx context.Context) (doc docstore.Document, ok bool, err error) {
	docs, err := s.docs.Query(ctx, s.coll, docstore.Query{Limit: 1})
	if err != nil {
		return nil, false, err
	}
	if len(docs) == 0 {
		return nil, false, nil
	}
	return docs[0], true, nil
}

// Save writes fields into the existing settings document, or creates the
// document the first time. It returns the settings as now stored.
func (s *Store) Save(ctx context.Context, fields docstore.Document) (docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if !ok {
		created, err := s.docs.Create(ctx, s.coll, docstore.CleanForCreate(fields))
		if err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return created, nil
	}

	clean := docstore.CleanForUpdate(fields)
	if err := s.docs.Update(ctx, s.coll, existing.ID(), clean); err != nil {
		return nil, fmt.Errorf("update settings %s: %w", existing.ID(), err)
	}
	for k, v := range clean {
		existing[k] = v
	}
	existing[docstore.UpdatedAtField] = docstore.FormatTime(s.now())
	return existing, nil
}
