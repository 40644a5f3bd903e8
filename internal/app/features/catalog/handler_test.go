package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/researchhub/internal/app/features/catalog"
	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/testutil"
	"go.uber.org/zap"
)

type listBody struct {
	EntityType string           `json:"entity_type"`
	Source     string           `json:"source"`
	Count      int              `json:"count"`
	Items      []map[string]any `json:"items"`
}

func newRouter(f *testutil.Fixtures) http.Handler {
	h := catalog.NewHandler(f.Store(), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return catalog.Routes(h)
}

func get(t *testing.T, h http.Handler, target string) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeList_LiveContent(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.CreateNews("n1", "Lab opens", "news", "published", "2024-02-01")
	f.CreateNews("n2", "Seminar", "events", "published", "2024-01-01")

	rec := get(t, newRouter(f), "/news?category=news")
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Source != "live" || body.Count != 1 || body.Items[0]["id"] != "n1" {
		t.Errorf("got %+v", body)
	}
}

func TestServeList_HidesDrafts(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.CreateNews("d1", "Draft", "news", "draft", "2024-03-01")
	f.CreateNews("p1", "Published", "news", "published", "2024-02-01")
	h := newRouter(f)

	for _, target := range []string{"/news", "/news?category=news&status=published", "/news?sort_by=published_date"} {
		rec := get(t, h, target)
		rec.AssertStatus(t, http.StatusOK)

		var body listBody
		rec.DecodeJSON(t, &body)
		if body.Count != 1 || len(body.Items) != 1 || body.Items[0]["id"] != "p1" {
			t.Errorf("%s: got %+v, want only p1", target, body)
		}
	}

	rec := get(t, h, "/news?status=draft")
	rec.AssertStatus(t, http.StatusOK)
	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Count != 0 || len(body.Items) != 0 {
		t.Errorf("status=draft: got %+v, want empty", body)
	}
}

func TestServeList_PublishedSortAndLimit(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.CreateNews("n1", "Jan", "news", "published", "2024-01-01")
	f.CreateNews("n2", "Mar", "news", "published", "2024-03-01")
	f.CreateNews("n3", "Feb", "news", "published", "2024-02-01")
	f.CreateNews("e1", "Talk", "events", "published", "2024-04-01")

	rec := get(t, newRouter(f), "/news?category=news&sort_by=published_date&sort_order=asc&limit=2")
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Count != 2 || body.Items[0]["id"] != "n1" || body.Items[1]["id"] != "n3" {
		t.Errorf("got %+v, want n1 then n3", body.Items)
	}
}

func TestServeList_FallbackForEmptyStore(t *testing.T) {
	f := testutil.NewFixtures(t)

	rec := get(t, newRouter(f), "/achievements")
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Source != "fallback" || body.Count != 2 {
		t.Errorf("got source %q count %d, want fallback with 2", body.Source, body.Count)
	}
}

func TestServeList_CuratedTypeIsEmpty(t *testing.T) {
	f := testutil.NewFixtures(t)

	rec := get(t, newRouter(f), "/people")
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Source != "empty" || body.Items == nil || len(body.Items) != 0 {
		t.Errorf("got %+v, want empty list", body)
	}
}

func TestServeList_UnknownType(t *testing.T) {
	f := testutil.NewFixtures(t)

	rec := get(t, newRouter(f), "/widgets")
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeList_BadParams(t *testing.T) {
	f := testutil.NewFixtures(t)

	for _, q := range []string{"limit=abc", "limit=0", "featured=maybe"} {
		rec := get(t, newRouter(f), "/projects?"+q)
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}

func TestServeSettings(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.CreateSettings("Vision Lab")

	rec := get(t, newRouter(f), "/settings")
	rec.AssertStatus(t, http.StatusOK)

	var body map[string]any
	rec.DecodeJSON(t, &body)
	if body["site_name"] != "Vision Lab" {
		t.Errorf("site_name: got %v", body["site_name"])
	}
}

func TestParseParams(t *testing.T) {
	p, err := catalog.ParseParams(url.Values{
		"category":   {"events"},
		"status":     {" Published "},
		"featured":   {"yes"},
		"sort_by":    {"published_date"},
		"sort_order": {"ASC"},
		"limit":      {"10000"},
	})
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	if p.Category != "events" || p.Status != "published" {
		t.Errorf("filters: got %+v", p)
	}
	if p.Featured == nil || !*p.Featured {
		t.Error("featured: want true")
	}
	if p.SortBy != "published_date" || p.SortOrder != "asc" {
		t.Errorf("sort: got %q %q", p.SortBy, p.SortOrder)
	}
	if p.Limit != 500 {
		t.Errorf("limit: got %d, want capped at 500", p.Limit)
	}

	empty, err := catalog.ParseParams(url.Values{})
	if err != nil {
		t.Fatalf("ParseParams empty: %v", err)
	}
	if empty.Featured != nil || empty.SortOrder != "" || empty.Limit != 0 {
		t.Errorf("empty: got %+v", empty)
	}
}
