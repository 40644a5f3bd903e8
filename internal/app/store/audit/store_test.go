package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
)

// tickingClock advances one second per call so created_at orders events.
func tickingClock() docstore.Clock {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestLogAndRecent(t *testing.T) {
	ctx := context.Background()
	docs := memdocs.New(tickingClock())
	store := audit.New(docs)

	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Actor: "a@example.edu", IP: "10.0.0.1", Success: true,
			Details: map[string]string{"auth_method": "password"}},
		{Category: audit.CategoryAdmin, EventType: audit.EventContentCreated, Actor: "a@example.edu", IP: "10.0.0.1", Success: true,
			Details: map[string]string{"entity_type": "news", "id": "n1"}},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, Actor: "b@example.edu", IP: "10.0.0.2",
			FailureReason: "wrong password"},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	all, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Recent returned %d events, want 3", len(all))
	}
	if all[0].EventType != audit.EventLoginFailed {
		t.Errorf("newest event = %q, want %q", all[0].EventType, audit.EventLoginFailed)
	}
	if all[0].FailureReason != "wrong password" || all[0].Success {
		t.Errorf("failure fields not preserved: %+v", all[0])
	}
	if all[0].ID == "" || all[0].Timestamp == "" {
		t.Errorf("expected id and timestamp, got %+v", all[0])
	}
	if got := all[1].Details["entity_type"]; got != "news" {
		t.Errorf("details entity_type = %q, want news", got)
	}

	auth, err := store.Recent(ctx, audit.CategoryAuth, 10)
	if err != nil {
		t.Fatalf("Recent(auth): %v", err)
	}
	if len(auth) != 2 {
		t.Errorf("auth events = %d, want 2", len(auth))
	}

	limited, err := store.Recent(ctx, "", 1)
	if err != nil {
		t.Fatalf("Recent(limit): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited events = %d, want 1", len(limited))
	}
}

type downClient struct{ docstore.Client }

func (downClient) Create(context.Context, string, docstore.Document) (docstore.Document, error) {
	return nil, docstore.Unavailable("create", audit.Collection, errors.New("offline"))
}

func TestLog_PropagatesStoreFailure(t *testing.T) {
	store := audit.New(downClient{})
	err := store.Log(context.Background(), audit.Event{EventType: audit.EventLogout})
	if !errors.Is(err, docstore.ErrUnavailable) {
		t.Errorf("Log error = %v, want ErrUnavailable", err)
	}
}
