package content_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/fallback"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/domain/models"
	"go.uber.org/zap"
)

var fixed = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixed }

func newStore(docs docstore.Client, opts ...content.Option) *content.Store {
	opts = append([]content.Option{content.WithClock(fixedClock)}, opts...)
	return content.New(docs, zap.NewNop(), opts...)
}

var curated = []registry.EntityType{registry.People, registry.Publications, registry.News, registry.Events}

func TestFetch_FallbackSubstitutionOnEmpty(t *testing.T) {
	for _, et := range registry.All() {
		if !registry.AllowsFallback(et) {
			continue
		}
		t.Run(string(et), func(t *testing.T) {
			s := newStore(memdocs.New(fixedClock))

			res := s.FetchResult(context.Background(), et, content.Params{})

			if res.Source != content.SourceFallback {
				t.Errorf("Source: got %v, want fallback", res.Source)
			}
			if len(res.Items) == 0 {
				t.Error("expected non-empty fallback items")
			}
			if res.Err != nil {
				t.Errorf("Err: got %v, want nil for an empty-but-successful read", res.Err)
			}
			if s.IsLoading(et) {
				t.Error("IsLoading: got true after fetch")
			}
		})
	}
}

func TestFetch_TruthfulEmpty(t *testing.T) {
	for _, et := range curated {
		t.Run(string(et), func(t *testing.T) {
			for name, client := range map[string]docstore.Client{
				"empty":   memdocs.New(fixedClock),
				"failing": failingClient{},
			} {
				s := newStore(client)
				res := s.FetchResult(context.Background(), et, content.Params{})
				if res.Source != content.SourceEmpty {
					t.Errorf("%s: Source got %v, want empty", name, res.Source)
				}
				if res.Items == nil || len(res.Items) != 0 {
					t.Errorf("%s: Items got %v, want empty non-nil list", name, res.Items)
				}
				if s.IsLoading(et) {
					t.Errorf("%s: IsLoading true after fetch", name)
				}
			}
		})
	}
}

func TestFetch_FailureUsesFallbackAndRecordsError(t *testing.T) {
	s := newStore(failingClient{})

	res := s.FetchResult(context.Background(), registry.Projects, content.Params{})

	if res.Source != content.SourceFallback {
		t.Errorf("Source: got %v, want fallback", res.Source)
	}
	if !errors.Is(res.Err, docstore.ErrUnavailable) {
		t.Errorf("Err: got %v, want ErrUnavailable", res.Err)
	}
	if !errors.Is(s.LastError(), docstore.ErrUnavailable) {
		t.Errorf("LastError: got %v, want ErrUnavailable", s.LastError())
	}
	s.ClearError()
	if s.LastError() != nil {
		t.Errorf("LastError after ClearError: got %v", s.LastError())
	}
}

func TestFetch_TimeoutEquivalentToFailure(t *testing.T) {
	hang := newHangingClient()
	t.Cleanup(func() { close(hang.release) })

	for _, et := range []registry.EntityType{registry.Achievements, registry.People, registry.ResearchAreas} {
		t.Run(string(et), func(t *testing.T) {
			slow := newStore(hang, content.WithFetchTimeout(20*time.Millisecond))
			failed := newStore(failingClient{})

			start := time.Now()
			got := slow.FetchResult(context.Background(), et, content.Params{})
			if d := time.Since(start); d > 2*time.Second {
				t.Fatalf("fetch took %v, bounded wait not applied", d)
			}
			want := failed.FetchResult(context.Background(), et, content.Params{})

			if got.Source != want.Source {
				t.Errorf("Source: got %v, want %v", got.Source, want.Source)
			}
			if len(got.Items) != len(want.Items) {
				t.Errorf("Items: got %d, want %d", len(got.Items), len(want.Items))
			}
			for i := range got.Items {
				if got.Items[i].ID() != want.Items[i].ID() {
					t.Errorf("Items[%d]: got %q, want %q", i, got.Items[i].ID(), want.Items[i].ID())
				}
			}
			if !errors.Is(got.Err, docstore.ErrUnavailable) {
				t.Errorf("Err: got %v, want ErrUnavailable", got.Err)
			}
			if slow.IsLoading(et) {
				t.Error("IsLoading: got true after timed-out fetch")
			}
		})
	}
}

func TestFetch_AchievementsMock(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))

	items := s.Fetch(context.Background(), registry.Achievements, content.Params{})

	if len(items) != 2 {
		t.Fatalf("len: got %d, want 2", len(items))
	}
	want := map[string]string{
		"Best Research Paper Award": "award",
		"Research Grant Success":    "funding",
	}
	for _, it := range items {
		name, _ := it["name"].(string)
		cat, ok := want[name]
		if !ok {
			t.Errorf("unexpected achievement %q", name)
			continue
		}
		if it["category"] != cat {
			t.Errorf("%s category: got %v, want %q", name, it["category"], cat)
		}
	}
}

func TestFetch_LiveNormalizesDatesAndLists(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("news", docstore.Document{
		"id":             "n1",
		"title":          "Hello",
		"published_date": fixed,
		"status":         "published",
	})
	s := newStore(docs)

	res := s.FetchResult(context.Background(), registry.News, content.Params{})

	if res.Source != content.SourceLive {
		t.Fatalf("Source: got %v, want live", res.Source)
	}
	got := res.Items[0]
	if got["published_date"] != "2024-03-01T09:30:00.000Z" {
		t.Errorf("published_date: got %v", got["published_date"])
	}
	tags, ok := got["tags"].([]any)
	if !ok || tags == nil || len(tags) != 0 {
		t.Errorf("tags: got %#v, want empty []any", got["tags"])
	}
}

func TestFetch_SingleConditionForNews(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("news",
		docstore.Document{"id": "a", "category": "events", "published_date": "2024-01-01"},
		docstore.Document{"id": "b", "category": "news", "published_date": "2024-02-01"},
	)
	s := newStore(docs)

	res := s.FetchResult(context.Background(), registry.News, content.Params{
		Category: "events",
		SortBy:   "published_date",
	})

	if res.Err != nil {
		t.Fatalf("Err: got %v", res.Err)
	}
	if len(res.Items) != 1 || res.Items[0].ID() != "a" {
		t.Errorf("Items: got %v, want only the events item", res.Items)
	}
}

func TestBuildQuery(t *testing.T) {
	yes := true

	tests := []struct {
		name        string
		et          registry.EntityType
		p           content.Params
		wantFilters []docstore.Filter
		wantSort    *docstore.Sort
		wantLimit   int
	}{
		{
			name:        "news category wins over sort",
			et:          registry.News,
			p:           content.Params{Category: "events", SortBy: "published_date", Limit: 3},
			wantFilters: []docstore.Filter{{Field: "category", Value: "events"}},
			wantLimit:   3,
		},
		{
			name:        "events status wins over featured",
			et:          registry.Events,
			p:           content.Params{Status: "published", Featured: &yes},
			wantFilters: []docstore.Filter{{Field: "status", Value: "published"}},
		},
		{
			name:     "news sort alone defaults to desc",
			et:       registry.News,
			p:        content.Params{SortBy: "published_date"},
			wantSort: &docstore.Sort{Field: "published_date", Direction: docstore.Descending},
		},
		{
			name:        "projects combine filter and sort",
			et:          registry.Projects,
			p:           content.Params{Status: "ongoing", SortBy: "start_date", SortOrder: "asc"},
			wantFilters: []docstore.Filter{{Field: "status", Value: "ongoing"}},
			wantSort:    &docstore.Sort{Field: "start_date", Direction: docstore.Ascending},
		},
		{
			name:        "featured filter",
			et:          registry.People,
			p:           content.Params{Featured: &yes},
			wantFilters: []docstore.Filter{{Field: "is_featured", Value: true}},
		},
		{
			name:      "settings always limited to one",
			et:        registry.Settings,
			p:         content.Params{},
			wantLimit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := content.BuildQuery(tt.et, tt.p)
			if len(q.Filters) != len(tt.wantFilters) {
				t.Fatalf("Filters: got %v, want %v", q.Filters, tt.wantFilters)
			}
			for i := range q.Filters {
				if q.Filters[i] != tt.wantFilters[i] {
					t.Errorf("Filters[%d]: got %v, want %v", i, q.Filters[i], tt.wantFilters[i])
				}
			}
			switch {
			case tt.wantSort == nil && q.Sort != nil:
				t.Errorf("Sort: got %v, want none", *q.Sort)
			case tt.wantSort != nil && (q.Sort == nil || *q.Sort != *tt.wantSort):
				t.Errorf("Sort: got %v, want %v", q.Sort, *tt.wantSort)
			}
			if q.Limit != tt.wantLimit {
				t.Errorf("Limit: got %d, want %d", q.Limit, tt.wantLimit)
			}
		})
	}
}

func TestCreate_StripsUndefinedAndNil(t *testing.T) {
	rec := &recordingClient{}
	s := newStore(rec)

	got, err := s.Create(context.Background(), registry.EntityType("x"), docstore.Document{
		"a": docstore.Undefined,
		"b": "",
		"c": nil,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	written := rec.created[0]
	if v, ok := written["b"]; !ok || v != "" {
		t.Errorf("b: got %v (present=%v), want empty string", v, ok)
	}
	if _, ok := written["a"]; ok {
		t.Error("a should be omitted")
	}
	if _, ok := written["c"]; ok {
		t.Error("c should be omitted")
	}
	if got[docstore.CreatedAtField] != "2024-03-01T09:30:00.000Z" {
		t.Errorf("created_at: got %v, want local timestamp", got[docstore.CreatedAtField])
	}
}

func TestUpdate_PreservesEmptyAndNil(t *testing.T) {
	rec := &recordingClient{}
	s := newStore(rec)

	_, err := s.Update(context.Background(), registry.EntityType("x"), "id-1", docstore.Document{
		"a": "",
		"b": nil,
		"c": docstore.Undefined,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	written := rec.updated[0]
	if v, ok := written["a"]; !ok || v != "" {
		t.Errorf("a: got %v (present=%v), want empty string", v, ok)
	}
	if v, ok := written["b"]; !ok || v != nil {
		t.Errorf("b: got %v (present=%v), want explicit nil", v, ok)
	}
	if _, ok := written["c"]; ok {
		t.Error("c should be omitted")
	}
}

func TestCreate_RoundTripKeepsID(t *testing.T) {
	docs := memdocs.New(fixedClock)
	s := newStore(docs)
	ctx := context.Background()

	created, err := s.Create(ctx, registry.People, docstore.Document{
		"name":               "Ada Lovelace",
		"category":           "advisor",
		"research_interests": []any{"computing"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var found docstore.Document
	for _, d := range s.Fetch(ctx, registry.People, content.Params{}) {
		if d.ID() == created.ID() {
			found = d
		}
	}
	if found == nil {
		t.Fatalf("fetched people do not include %q", created.ID())
	}
	if found["name"] != "Ada Lovelace" || found["category"] != "advisor" {
		t.Errorf("fields changed: got %v", found)
	}
	if found[docstore.CreatedAtField] != created[docstore.CreatedAtField] {
		t.Errorf("created_at: got %v, want %v", found[docstore.CreatedAtField], created[docstore.CreatedAtField])
	}
}

func TestCreate_ReplacesFallbackItems(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))
	ctx := context.Background()

	if src := s.FetchResult(ctx, registry.Achievements, content.Params{}).Source; src != content.SourceFallback {
		t.Fatalf("precondition: Source got %v, want fallback", src)
	}

	created, err := s.Create(ctx, registry.Achievements, docstore.Document{"name": "Dean's Award", "year": 2025})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap := s.Snapshot(registry.Achievements)
	if snap.Source != content.SourceLive {
		t.Errorf("Source: got %v, want live", snap.Source)
	}
	if len(snap.Items) != 1 || snap.Items[0].ID() != created.ID() {
		t.Errorf("Items: got %v, want only the created document", snap.Items)
	}
}

func TestCreate_AppendsToLiveItems(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("projects", docstore.Document{"id": "p1", "name": "Existing"})
	s := newStore(docs)
	ctx := context.Background()

	s.Fetch(ctx, registry.Projects, content.Params{})
	if _, err := s.Create(ctx, registry.Projects, docstore.Document{"name": "New"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items := s.Items(registry.Projects)
	if len(items) != 2 {
		t.Fatalf("len: got %d, want 2", len(items))
	}
	if items[0].ID() != "p1" {
		t.Errorf("Items[0]: got %q, want p1", items[0].ID())
	}
	if _, ok := items[1]["team_members"].([]any); !ok {
		t.Errorf("team_members: got %T, want []any", items[1]["team_members"])
	}
}

func TestUpdate_ReplacesLocalDocument(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("people", docstore.Document{"id": "p1", "name": "Ada", "title": "Dr.", "research_interests": []any{}})
	s := newStore(docs)
	ctx := context.Background()

	s.Fetch(ctx, registry.People, content.Params{})
	merged, err := s.Update(ctx, registry.People, "p1", docstore.Document{"title": ""})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if merged["name"] != "Ada" || merged["title"] != "" {
		t.Errorf("merged: got %v", merged)
	}
	if merged[docstore.UpdatedAtField] != "2024-03-01T09:30:00.000Z" {
		t.Errorf("updated_at: got %v", merged[docstore.UpdatedAtField])
	}

	items := s.Items(registry.People)
	if items[0]["title"] != "" {
		t.Errorf("local title: got %v, want cleared", items[0]["title"])
	}
}

func TestUpdate_UnfetchedDocumentReadBack(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("projects", docstore.Document{"id": "p1", "name": "Alpha", "team_members": []any{"a"}})
	s := newStore(docs)

	merged, err := s.Update(context.Background(), registry.Projects, "p1", docstore.Document{"status": "completed"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if merged["name"] != "Alpha" || merged["status"] != "completed" {
		t.Errorf("merged: got %v, want stored fields plus the patch", merged)
	}
	members, _ := merged["team_members"].([]any)
	if len(members) != 1 || members[0] != "a" {
		t.Errorf("team_members: got %v, want [a]", merged["team_members"])
	}
	if len(s.Items(registry.Projects)) != 0 {
		t.Error("Update should not populate items for a type that was never fetched")
	}
}

func TestUpdate_UnfetchedWithoutLookupOmitsUntouchedLists(t *testing.T) {
	rec := &recordingClient{}
	s := newStore(rec)

	merged, err := s.Update(context.Background(), registry.Projects, "p1", docstore.Document{"status": "completed"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := merged["team_members"]; ok {
		t.Errorf("team_members: got %v, want absent", merged["team_members"])
	}
	if merged["status"] != "completed" || merged.ID() != "p1" {
		t.Errorf("merged: got %v", merged)
	}
}

func TestUpdate_NotFoundPropagates(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))

	_, err := s.Update(context.Background(), registry.People, "missing", docstore.Document{"name": "x"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMutations_MissingID(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))
	ctx := context.Background()

	if _, err := s.Update(ctx, registry.People, "", docstore.Document{}); !errors.Is(err, content.ErrMissingID) {
		t.Errorf("Update: got %v, want ErrMissingID", err)
	}
	if err := s.Delete(ctx, registry.People, ""); !errors.Is(err, content.ErrMissingID) {
		t.Errorf("Delete: got %v, want ErrMissingID", err)
	}
}

func TestDelete_RemovesLocallyAndRemotely(t *testing.T) {
	docs := memdocs.New(fixedClock)
	s := newStore(docs)
	ctx := context.Background()

	created, err := s.Create(ctx, registry.Publications, docstore.Document{"title": "Paper"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, registry.Publications, created.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, d := range s.Items(registry.Publications) {
		if d.ID() == created.ID() {
			t.Error("deleted document still in local items")
		}
	}
	for _, d := range s.Fetch(ctx, registry.Publications, content.Params{}) {
		if d.ID() == created.ID() {
			t.Error("deleted document returned by fresh fetch")
		}
	}
}

func TestMutations_FailurePropagatesAndLeavesState(t *testing.T) {
	s := newStore(failingClient{})
	ctx := context.Background()

	before := s.Fetch(ctx, registry.Projects, content.Params{})
	s.ClearError()

	if _, err := s.Create(ctx, registry.Projects, docstore.Document{"name": "x"}); !errors.Is(err, errBackend) {
		t.Errorf("Create: got %v, want backend error", err)
	}
	if _, err := s.Update(ctx, registry.Projects, before[0].ID(), docstore.Document{"name": "x"}); err == nil {
		t.Error("Update: expected error")
	}
	if err := s.Delete(ctx, registry.Projects, before[0].ID()); err == nil {
		t.Error("Delete: expected error")
	}

	after := s.Items(registry.Projects)
	if len(after) != len(before) {
		t.Errorf("Items: got %d, want %d unchanged", len(after), len(before))
	}
	if after[0]["name"] != before[0]["name"] {
		t.Errorf("Items[0].name changed to %v", after[0]["name"])
	}
	if s.LastError() == nil {
		t.Error("LastError: expected the mutation failure")
	}
}

func TestFetch_StaleResponseDoesNotClobberNewer(t *testing.T) {
	gate := make(chan struct{})
	sc := &scriptedClient{
		responses: [][]docstore.Document{
			{{"id": "old"}},
			{{"id": "new"}},
		},
		gates:   map[int]chan struct{}{0: gate},
		started: make(chan int, 2),
	}
	s := newStore(sc)
	ctx := context.Background()

	done := make(chan content.Result, 1)
	go func() { done <- s.FetchResult(ctx, registry.News, content.Params{}) }()
	<-sc.started // first query is now blocked

	second := s.FetchResult(ctx, registry.News, content.Params{})
	<-sc.started
	if second.Items[0].ID() != "new" {
		t.Fatalf("second fetch: got %q, want new", second.Items[0].ID())
	}
	if !s.IsLoading(registry.News) {
		t.Error("IsLoading: want true while the first fetch is pending")
	}

	close(gate)
	first := <-done
	if first.Items[0].ID() != "old" {
		t.Errorf("first fetch result: got %q, want old", first.Items[0].ID())
	}

	items := s.Items(registry.News)
	if len(items) != 1 || items[0].ID() != "new" {
		t.Errorf("state: got %v, want the newer response", items)
	}
	if s.IsLoading(registry.News) {
		t.Error("IsLoading: got true after both fetches resolved")
	}
}

func TestConcurrentFetchesAndMutations_DoNotCrash(t *testing.T) {
	docs := memdocs.New(fixedClock)
	s := newStore(docs)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.Fetch(ctx, registry.News, content.Params{Category: "news"})
		}()
		go func() {
			defer wg.Done()
			s.Fetch(ctx, registry.News, content.Params{SortBy: "published_date"})
		}()
		go func(i int) {
			defer wg.Done()
			if _, err := s.Create(ctx, registry.News, docstore.Document{"title": fmt.Sprintf("t%d", i), "category": "news"}); err != nil {
				t.Errorf("Create: %v", err)
			}
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot(registry.News)
	if snap.IsLoading {
		t.Error("IsLoading: got true after all fetches resolved")
	}
	if snap.Source == content.SourceFallback {
		t.Error("news must never show fallback content")
	}
	if got := len(s.Fetch(ctx, registry.News, content.Params{})); got != 20 {
		t.Errorf("fresh fetch: got %d, want 20", got)
	}
}

func TestSubscribe_ReceivesLatest(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))
	ctx := context.Background()

	ch, cancel := s.Subscribe(registry.PhotoGallery)
	defer cancel()

	s.Fetch(ctx, registry.PhotoGallery, content.Params{})
	s.Fetch(ctx, registry.PhotoGallery, content.Params{})

	select {
	case items := <-ch:
		if len(items) != len(fallback.For(registry.PhotoGallery)) {
			t.Errorf("len: got %d", len(items))
		}
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
}

func TestSettings_SingletonAccess(t *testing.T) {
	docs := memdocs.New(fixedClock)
	s := newStore(docs)
	ctx := context.Background()

	got := s.GetSettings(ctx)
	if got["site_name"] != models.DefaultSiteName {
		t.Errorf("default site_name: got %v", got["site_name"])
	}

	if _, err := s.Create(ctx, registry.Settings, docstore.Document{"site_name": "Lab"}); err != nil {
		t.Fatalf("Create settings: %v", err)
	}
	if _, err := s.SaveSettings(ctx, docstore.Document{"contact_email": "lab@example.edu"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if n := docs.Len("settings"); n != 1 {
		t.Errorf("settings documents: got %d, want 1", n)
	}

	typed, err := s.SiteSettings(ctx)
	if err != nil {
		t.Fatalf("SiteSettings: %v", err)
	}
	if typed.SiteName != "Lab" || typed.ContactEmail != "lab@example.edu" {
		t.Errorf("SiteSettings: got %+v", typed)
	}
}

func TestSettingsResult_SourceMatchesDocument(t *testing.T) {
	docs := memdocs.New(fixedClock)
	s := newStore(docs)
	ctx := context.Background()

	doc, src := s.SettingsResult(ctx)
	if src != content.SourceFallback || doc["site_name"] != models.DefaultSiteName {
		t.Errorf("empty store: got %v from %v, want default from fallback", doc, src)
	}

	docs.Seed("settings", docstore.Document{"id": "s1", "site_name": "Vision Lab"})
	doc, src = s.SettingsResult(ctx)
	if src != content.SourceLive || doc.ID() != "s1" || doc["site_name"] != "Vision Lab" {
		t.Errorf("stored settings: got %v from %v, want s1 from live", doc, src)
	}
}

func TestInitialLoad(t *testing.T) {
	docs := memdocs.New(fixedClock)
	docs.Seed("research_areas", docstore.Document{"id": "ra1", "title": "Robotics"})
	s := newStore(docs)

	got := s.InitialLoad(context.Background())

	if got[registry.ResearchAreas] != content.SourceLive {
		t.Errorf("researchAreas: got %v, want live", got[registry.ResearchAreas])
	}
	if got[registry.Settings] != content.SourceFallback {
		t.Errorf("settings: got %v, want fallback", got[registry.Settings])
	}
	if len(got) != 2 {
		t.Errorf("loaded %d types, want 2", len(got))
	}
	if items := s.Items(registry.People); len(items) != 0 {
		t.Error("people should not be loaded eagerly")
	}
}

func TestFetchAs(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))

	got, err := content.FetchAs[models.Achievement](context.Background(), s, registry.Achievements, content.Params{})
	if err != nil {
		t.Fatalf("FetchAs: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Best Research Paper Award" || got[0].Year != 2024 {
		t.Errorf("got %+v", got)
	}
}

func TestFetch_UnknownTypeIsEmpty(t *testing.T) {
	s := newStore(memdocs.New(fixedClock))

	res := s.FetchResult(context.Background(), registry.EntityType("nope"), content.Params{})
	if res.Source != content.SourceEmpty || len(res.Items) != 0 {
		t.Errorf("got %v with %d items, want empty", res.Source, len(res.Items))
	}
}
