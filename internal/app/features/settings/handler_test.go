package settings_test

import (
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/features/settings"
	"github.com/dalemusser/researchhub/internal/domain/models"
	"github.com/dalemusser/researchhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(f *testutil.Fixtures) http.Handler {
	h := settings.NewHandler(f.Store(), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

type settingsBody struct {
	Source   string         `json:"source"`
	Settings map[string]any `json:"settings"`
}

func TestServeSettings_DefaultsWhenEmpty(t *testing.T) {
	f := testutil.NewFixtures(t)

	rec := testutil.NewRecorder()
	newRouter(f).ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body settingsBody
	rec.DecodeJSON(t, &body)
	if body.Source != "fallback" {
		t.Errorf("source: got %q, want fallback", body.Source)
	}
	if body.Settings["site_name"] != models.DefaultSiteName {
		t.Errorf("site_name: got %v", body.Settings["site_name"])
	}
}

func TestServeSettings_Stored(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.CreateSettings("Vision Lab")

	rec := testutil.NewRecorder()
	newRouter(f).ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body settingsBody
	rec.DecodeJSON(t, &body)
	if body.Source != "live" || body.Settings["site_name"] != "Vision Lab" {
		t.Errorf("got source %q settings %v, want the stored document from live", body.Source, body.Settings)
	}
}

func TestHandleSettings_SavesSingleton(t *testing.T) {
	f := testutil.NewFixtures(t)
	router := newRouter(f)

	for _, payload := range []map[string]any{
		{"site_name": "Robotics Lab"},
		{"contact_email": "lab@example.edu"},
	} {
		rec := testutil.NewRecorder()
		req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/", payload), testutil.AdminUser())
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusOK)
	}

	if n := f.Docs().Len("settings"); n != 1 {
		t.Fatalf("settings documents: got %d, want 1", n)
	}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	var body settingsBody
	rec.DecodeJSON(t, &body)
	if body.Source != "live" {
		t.Errorf("source: got %q, want live", body.Source)
	}
	if body.Settings["site_name"] != "Robotics Lab" || body.Settings["contact_email"] != "lab@example.edu" {
		t.Errorf("settings: got %v", body.Settings)
	}
}

func TestHandleSettings_RejectsBadEmail(t *testing.T) {
	f := testutil.NewFixtures(t)

	rec := testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/", map[string]any{"contact_email": "nope"}), testutil.AdminUser())
	newRouter(f).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	if n := f.Docs().Len("settings"); n != 0 {
		t.Errorf("settings documents: got %d, want 0", n)
	}
}
