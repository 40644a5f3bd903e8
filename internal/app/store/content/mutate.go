// internal/app/store/content/mutate.go
package content

import (
	"context"
	"fmt"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Create writes a new document of type t and appends it to t's items. Nil
// and Undefined fields are left out of the write; empty strings are kept.
// If t is currently showing placeholder content, the new document replaces
// it. Creating settings saves the singleton instead.
func (s *Store) Create(ctx context.Context, t registry.EntityType, fields docstore.Document) (docstore.Document, error) {
	if t == registry.Settings {
		return s.SaveSettings(ctx, fields)
	}

	coll := registry.PhysicalName(t)
	created, err := s.docs.Create(ctx, coll, docstore.CleanForCreate(fields))
	metrics.ObserveMutation(string(t), "create", err)
	if err != nil {
		return nil, s.mutationFailed("create", t, "", err)
	}

	doc := s.stamp(created, true)
	normalize(t, []docstore.Document{doc})

	s.mu.Lock()
	st := s.stateFor(t)
	items := st.items
	if st.source == SourceFallback {
		items = nil
	}
	items = append(docstore.CloneAll(items), doc.Clone())
	st.applied = st.issued
	s.publish(st, items, SourceLive)
	s.mu.Unlock()

	return doc, nil
}

// Update merges fields into document id of type t. Only Undefined fields
// are dropped: an explicit "" or nil is written so an edit can clear a
// value. The matching local document is replaced with the merged result,
// which is returned. A document not held locally is read back from the
// store when the client supports it. Updating settings saves the singleton.
func (s *Store) Update(ctx context.Context, t registry.EntityType, id string, fields docstore.Document) (docstore.Document, error) {
	if t == registry.Settings {
		return s.SaveSettings(ctx, fields)
	}
	if id == "" {
		return nil, fmt.Errorf("update %s: %w", t, ErrMissingID)
	}

	clean := docstore.CleanForUpdate(fields)
	err := s.docs.Update(ctx, registry.PhysicalName(t), id, clean)
	metrics.ObserveMutation(string(t), "update", err)
	if err != nil {
		return nil, s.mutationFailed("update", t, id, err)
	}

	s.mu.Lock()
	held := indexOf(s.stateFor(t).items, id) >= 0
	s.mu.Unlock()
	var stored docstore.Document
	if !held {
		stored = s.readBack(ctx, t, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(t)

	idx := indexOf(st.items, id)
	var merged docstore.Document
	switch {
	case idx >= 0:
		merged = st.items[idx].Clone()
	case stored != nil:
		merged = stored
	default:
		// Only the patch is known; list fields it did not touch are left out
		// rather than reported empty.
		merged = docstore.Document{docstore.IDField: id}
	}
	for k, v := range clean {
		merged[k] = v
	}
	merged = s.stamp(merged, false)
	if idx >= 0 || stored != nil {
		normalize(t, []docstore.Document{merged})
	} else {
		normalizePartial(t, merged)
	}

	if idx >= 0 {
		items := docstore.CloneAll(st.items)
		items[idx] = merged.Clone()
		st.applied = st.issued
		s.publish(st, items, st.source)
	}
	return merged, nil
}

// readBack loads document id after a write. It returns nil when the client
// cannot look documents up by id or the read fails.
func (s *Store) readBack(ctx context.Context, t registry.EntityType, id string) docstore.Document {
	f, ok := s.docs.(docstore.Finder)
	if !ok {
		return nil
	}
	doc, err := f.FindByID(ctx, registry.PhysicalName(t), id)
	if err != nil {
		s.log.Warn("read back after update failed",
			zap.String("entity_type", string(t)),
			zap.String("id", id),
			zap.Error(err))
		return nil
	}
	return doc
}

// Delete removes document id of type t from the store and from t's items.
func (s *Store) Delete(ctx context.Context, t registry.EntityType, id string) error {
	if id == "" {
		return fmt.Errorf("delete %s: %w", t, ErrMissingID)
	}

	err := s.docs.Delete(ctx, registry.PhysicalName(t), id)
	metrics.ObserveMutation(string(t), "delete", err)
	if err != nil {
		return s.mutationFailed("delete", t, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(t)
	if idx := indexOf(st.items, id); idx >= 0 {
		items := make([]docstore.Document, 0, len(st.items)-1)
		items = append(items, st.items[:idx]...)
		items = append(items, st.items[idx+1:]...)
		st.applied = st.issued
		s.publish(st, docstore.CloneAll(items), st.source)
	}
	return nil
}

// stamp fills in timestamps locally until the next fetch brings the
// store's own values.
func (s *Store) stamp(doc docstore.Document, creating bool) docstore.Document {
	now := docstore.FormatTime(s.now())
	if creating {
		if _, ok := doc[docstore.CreatedAtField]; !ok {
			doc[docstore.CreatedAtField] = now
		}
		if _, ok := doc[docstore.UpdatedAtField]; !ok {
			doc[docstore.UpdatedAtField] = now
		}
		return doc
	}
	doc[docstore.UpdatedAtField] = now
	return doc
}

func (s *Store) mutationFailed(op string, t registry.EntityType, id string, err error) error {
	s.log.Error("content mutation failed",
		zap.String("op", op),
		zap.String("entity_type", string(t)),
		zap.String("id", id),
		zap.Error(err))
	s.setErr(err)
	if id == "" {
		return fmt.Errorf("%s %s: %w", op, t, err)
	}
	return fmt.Errorf("%s %s/%s: %w", op, t, id, err)
}

func indexOf(docs []docstore.Document, id string) int {
	for i, d := range docs {
		if d.ID() == id {
			return i
		}
	}
	return -1
}
