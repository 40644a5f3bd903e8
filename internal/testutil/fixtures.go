package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
	"github.com/dalemusser/researchhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// FixedTime is the clock every fixture store uses.
var FixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// Fixtures seeds content into an in-memory document store and exposes an
// orchestrator over it.
type Fixtures struct {
	t     *testing.T
	docs  *memdocs.Client
	store *content.Store
}

// NewFixtures creates an empty in-memory store.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	clock := func() time.Time { return FixedTime }
	docs := memdocs.New(clock)
	return &Fixtures{
		t:     t,
		docs:  docs,
		store: content.New(docs, zap.NewNop(), content.WithClock(clock)),
	}
}

// Docs returns the underlying document store.
func (f *Fixtures) Docs() *memdocs.Client { return f.docs }

// Store returns the orchestrator.
func (f *Fixtures) Store() *content.Store { return f.store }

func (f *Fixtures) seed(collection string, v any) docstore.Document {
	f.t.Helper()
	d, err := docstore.FromStruct(v)
	if err != nil {
		f.t.Fatalf("fixture %s: %v", collection, err)
	}
	f.docs.Seed(collection, d)
	return d
}

// CreatePerson seeds a person.
func (f *Fixtures) CreatePerson(id, name, category string) docstore.Document {
	f.t.Helper()
	return f.seed("people", models.Person{
		ID:                id,
		Name:              name,
		Category:          category,
		ResearchInterests: []string{},
	})
}

// CreateNews seeds a news item.
func (f *Fixtures) CreateNews(id, title, category, status, published string) docstore.Document {
	f.t.Helper()
	return f.seed("news", models.NewsItem{
		ID:            id,
		Title:         title,
		Category:      category,
		Status:        status,
		PublishedDate: published,
		Tags:          []string{},
	})
}

// CreateSettings seeds the settings singleton.
func (f *Fixtures) CreateSettings(siteName string) docstore.Document {
	f.t.Helper()
	return f.seed("settings", models.SiteSettings{ID: "settings-1", SiteName: siteName})
}
