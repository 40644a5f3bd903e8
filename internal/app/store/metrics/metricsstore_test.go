package metricsstore_test

import (
	"context"
	"testing"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
	metricsstore "github.com/dalemusser/researchhub/internal/app/store/metrics"
	"github.com/dalemusser/researchhub/internal/app/store/mongodocs"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/testutil"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, mongodocs.New(db, nil))

	for _, et := range []registry.EntityType{registry.People, registry.News, registry.PhotoGallery} {
		if counts[et] != 0 {
			t.Errorf("%s: got %d, want 0", et, counts[et])
		}
	}
	if _, ok := counts[registry.Settings]; ok {
		t.Error("settings should not be counted")
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	docs := memdocs.New(nil)
	ctx := context.Background()

	docs.Seed("people", docstore.Document{"name": "A"}, docstore.Document{"name": "B"})
	docs.Seed("research_areas", docstore.Document{"title": "ML"})

	counts := metricsstore.FetchDashboardCounts(ctx, docs)

	if counts[registry.People] != 2 {
		t.Errorf("People: got %d, want 2", counts[registry.People])
	}
	if counts[registry.ResearchAreas] != 1 {
		t.Errorf("ResearchAreas: got %d, want 1", counts[registry.ResearchAreas])
	}
	if counts[registry.Achievements] != 0 {
		t.Errorf("Achievements: got %d, want 0 (fallback is never counted)", counts[registry.Achievements])
	}
}

func TestFetchDashboardCounts_StoreDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, memdocs.New(nil))
	if counts[registry.People] != 0 {
		t.Errorf("People: got %d, want 0", counts[registry.People])
	}
}
