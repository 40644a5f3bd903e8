// internal/app/store/docstore/docstore.go

// Package docstore defines the contract every document backend implements
// (MongoDB, Firestore, in-memory) and the shapes that cross it: schema-less
// documents, equality/sort/limit queries, and the normalized error and
// timestamp representations the rest of the app relies on.
package docstore

import (
	"context"
	"time"
)

// IDField is the key under which a document's store-assigned identifier is
// exposed to the application, whatever the backend calls it on the wire.
const IDField = "id"

// Server-assigned write timestamps.
const (
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
)

// Document is a schema-less record. Values are plain Go values: string,
// bool, int64, float64, time.Time (before normalization), []any and
// map[string]any.
type Document map[string]any

// ID returns the document identifier or "" if it has none.
func (d Document) ID() string {
	if d == nil {
		return ""
	}
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a deep copy of d so callers can hand documents out of shared
// state without aliasing nested lists or maps.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, vv := range t {
			m[k] = vv
		}
		return m
	default:
		return v
	}
}

// CloneAll deep-copies a slice of documents. A nil input yields an empty,
// non-nil slice.
func CloneAll(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Clone())
	}
	return out
}

// Filter is an equality condition on a single field.
type Filter struct {
	Field string
	Value any
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Sort orders results by a single field.
type Sort struct {
	Field     string
	Direction Direction
}

// Query is the backend-neutral query the orchestrator builds per fetch.
// A zero Query returns every document in the collection.
type Query struct {
	Filters []Filter
	Sort    *Sort
	Limit   int // <= 0 means no cap
}

// Client issues reads and writes against a document store. Implementations
// normalize date fields on read (see NormalizeDates) and report every
// backend failure as an *UnavailableError.
type Client interface {
	// Query returns the documents of collection matching q.
	Query(ctx context.Context, collection string, q Query) ([]Document, error)

	// Create writes a new document with server-assigned created_at and
	// updated_at, returning the supplied fields merged with the new id.
	Create(ctx context.Context, collection string, fields Document) (Document, error)

	// Update merges fields into the document and refreshes updated_at.
	// It returns ErrNotFound when no document has the given id.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Finder is implemented by clients that can read a single document by id.
// FindByID returns ErrNotFound when the document does not exist.
type Finder interface {
	FindByID(ctx context.Context, collection, id string) (Document, error)
}

// Clock returns the current time; backends take one so tests can pin it.
type Clock func() time.Time
