package logout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/researchhub/internal/app/features/logout"
	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"github.com/dalemusser/researchhub/internal/testutil"
	"go.uber.org/zap"
)

const cookieName = "researchhub-test"

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	mgr, err := auth.NewSessionManager("test-session-key-for-testing-only", cookieName, "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return mgr
}

// signedInCookies signs an admin in and returns the cookies a browser
// would send back.
func signedInCookies(t *testing.T, mgr *auth.SessionManager) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	u := auth.SessionUser{ID: "local:admin", LoginID: "admin@example.edu", Role: auth.RoleAdmin, AuthMethod: "password"}
	if err := mgr.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return rec.Result().Cookies()
}

func expiredSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c.MaxAge < 0
		}
	}
	return false
}

func TestServeLogout_Responses(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		status   int
		location string
	}{
		{"browser", "text/html", http.StatusSeeOther, "/"},
		{"no accept header", "", http.StatusSeeOther, "/"},
		{"api client", "application/json", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := newSessionManager(t)
			h := logout.NewHandler(mgr, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			for _, c := range signedInCookies(t, mgr) {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			h.ServeLogout(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location: got %q, want %q", loc, tt.location)
			}
			if !expiredSessionCookie(rec) {
				t.Error("session cookie was not expired")
			}
		})
	}
}

func TestServeLogout_AnonymousIsHarmless(t *testing.T) {
	docs := memdocs.New(nil)
	h := logout.NewHandler(newSessionManager(t), zap.NewNop())
	h.Audit = auditlog.New(audit.New(docs), zap.NewNop(), auditlog.Config{Auth: auditlog.ModeDB})

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if n := docs.Len(audit.Collection); n != 0 {
		t.Errorf("audit events: got %d, want none for an anonymous visitor", n)
	}
}

func TestServeLogout_RecordsAuditEvent(t *testing.T) {
	store := audit.New(memdocs.New(nil))
	h := logout.NewHandler(newSessionManager(t), zap.NewNop())
	h.Audit = auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeDB})

	user := testutil.AdminUser()
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/logout", nil), user)
	h.ServeLogout(httptest.NewRecorder(), req)

	events, err := store.Recent(context.Background(), audit.CategoryAuth, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if e := events[0]; e.EventType != audit.EventLogout || e.Actor != user.Email || !e.Success {
		t.Errorf("event: got %+v", e)
	}
}
