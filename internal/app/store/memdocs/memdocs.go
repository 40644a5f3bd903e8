// internal/app/store/memdocs/memdocs.go

// Package memdocs is a process-local docstore.Client. It backs the
// "memory" backend for local development and the orchestrator tests.
package memdocs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/google/uuid"
)

var (
	_ docstore.Client = (*Client)(nil)
	_ docstore.Finder = (*Client)(nil)
)

// Client stores documents in memory, keyed by collection then id.
type Client struct {
	mu    sync.RWMutex
	colls map[string]*collection
	now   docstore.Clock
}

type collection struct {
	order []string // insertion order, so unsorted queries are stable
	docs  map[string]docstore.Document
}

// New creates an empty Client. A nil clock uses time.Now.
func New(clock docstore.Clock) *Client {
	if clock == nil {
		clock = time.Now
	}
	return &Client{colls: make(map[string]*collection), now: clock}
}

func (c *Client) coll(name string) *collection {
	col, ok := c.colls[name]
	if !ok {
		col = &collection{docs: make(map[string]docstore.Document)}
		c.colls[name] = col
	}
	return col
}

// Seed inserts documents as-is, keeping their ids. Documents without an id
// get a fresh one.
func (c *Client) Seed(collection string, docs ...docstore.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col := c.coll(collection)
	for _, d := range docs {
		d = d.Clone()
		id := d.ID()
		if id == "" {
			id = uuid.NewString()
			d[docstore.IDField] = id
		}
		if _, exists := col.docs[id]; !exists {
			col.order = append(col.order, id)
		}
		col.docs[id] = d
	}
}

// Len returns the number of documents in a collection.
func (c *Client) Len(collection string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if col, ok := c.colls[collection]; ok {
		return len(col.docs)
	}
	return 0
}

// Get returns a copy of one stored document, as written (no date
// normalization).
func (c *Client) Get(collection, id string) (docstore.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col, ok := c.colls[collection]
	if !ok {
		return nil, false
	}
	d, ok := col.docs[id]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// Query implements docstore.Client.
func (c *Client) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, docstore.Unavailable("query", collection, err)
	}

	c.mu.RLock()
	var out []docstore.Document
	if col, ok := c.colls[collection]; ok {
		for _, id := range col.order {
			d := col.docs[id]
			if matches(d, q.Filters) {
				out = append(out, d.Clone())
			}
		}
	}
	c.mu.RUnlock()

	if q.Sort != nil {
		field, desc := q.Sort.Field, q.Sort.Direction == docstore.Descending
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compare(out[i][field], out[j][field])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	for _, d := range out {
		docstore.NormalizeDates(d)
	}
	if out == nil {
		out = []docstore.Document{}
	}
	return out, nil
}

// Create implements docstore.Client.
func (c *Client) Create(ctx context.Context, collection string, fields docstore.Document) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, docstore.Unavailable("create", collection, err)
	}
	now := c.now().UTC()
	d := fields.Clone()
	if d == nil {
		d = docstore.Document{}
	}
	id := uuid.NewString()
	d[docstore.IDField] = id
	d[docstore.CreatedAtField] = now
	d[docstore.UpdatedAtField] = now

	c.mu.Lock()
	col := c.coll(collection)
	col.order = append(col.order, id)
	col.docs[id] = d
	c.mu.Unlock()

	out := d.Clone()
	docstore.NormalizeDates(out)
	return out, nil
}

// Update implements docstore.Client.
func (c *Client) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if err := ctx.Err(); err != nil {
		return docstore.Unavailable("update", collection, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	col, ok := c.colls[collection]
	if !ok {
		return fmt.Errorf("update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	d, ok := col.docs[id]
	if !ok {
		return fmt.Errorf("update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	for k, v := range fields.Clone() {
		d[k] = v
	}
	d[docstore.UpdatedAtField] = c.now().UTC()
	return nil
}

// FindByID implements docstore.Finder.
func (c *Client) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, docstore.Unavailable("find", collection, err)
	}
	d, ok := c.Get(collection, id)
	if !ok {
		return nil, fmt.Errorf("find %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return docstore.NormalizeDates(d), nil
}

// Delete implements docstore.Client.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return docstore.Unavailable("delete", collection, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	col, ok := c.colls[collection]
	if !ok {
		return nil
	}
	if _, ok := col.docs[id]; !ok {
		return nil
	}
	delete(col.docs, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping implements docstore.Client.
func (c *Client) Ping(ctx context.Context) error {
	return docstore.Unavailable("ping", "", ctx.Err())
}

func matches(d docstore.Document, filters []docstore.Filter) bool {
	for _, f := range filters {
		if !equal(d[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	switch at := a.(type) {
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	case time.Time:
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	case nil:
		return b == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// compare orders missing values first, then by type-appropriate ordering.
// Mixed types fall back to comparing their string forms.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	switch at := a.(type) {
	case time.Time:
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	case bool:
		if bt, ok := b.(bool); ok {
			switch {
			case at == bt:
				return 0
			case !at:
				return -1
			}
			return 1
		}
	case string:
		if bt, ok := b.(string); ok {
			return strings.Compare(at, bt)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
