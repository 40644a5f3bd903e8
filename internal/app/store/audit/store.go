// internal/app/store/audit/store.go
package audit

import (
	"context"
	"fmt"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
)

// Collection holds audit events on every backend.
const Collection = "audit_events"

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess = "login_success"
	EventLoginFailed  = "login_failed"
	EventLogout       = "logout"
)

// Admin event types
const (
	EventContentCreated = "content_created"
	EventContentUpdated = "content_updated"
	EventContentDeleted = "content_deleted"
	EventSettingsSaved  = "settings_saved"
)

// Event represents an audit event. Timestamp is the store's created_at,
// set on write.
type Event struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	// Event classification
	Category  string `json:"category"`
	EventType string `json:"event_type"`

	// Who
	Actor string `json:"actor,omitempty"` // login id of the signed-in or attempting user

	// Context
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent,omitempty"`

	// Outcome
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `json:"details,omitempty"`
}

// Store writes audit events through a document client.
type Store struct {
	docs docstore.Client
}

// New creates a new audit Store.
func New(docs docstore.Client) *Store {
	return &Store{docs: docs}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if _, err := s.docs.Create(ctx, Collection, toDocument(event)); err != nil {
		return fmt.Errorf("audit log %s: %w", event.EventType, err)
	}
	return nil
}

// Recent returns up to limit events, newest first, optionally restricted
// to one category.
func (s *Store) Recent(ctx context.Context, category string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	q := docstore.Query{
		Sort:  &docstore.Sort{Field: docstore.CreatedAtField, Direction: docstore.Descending},
		Limit: limit,
	}
	if category != "" {
		q.Filters = []docstore.Filter{{Field: "category", Value: category}}
	}
	docs, err := s.docs.Query(ctx, Collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func toDocument(e Event) docstore.Document {
	d := docstore.Document{
		"category":   e.Category,
		"event_type": e.EventType,
		"ip":         e.IP,
		"success":    e.Success,
	}
	if e.Actor != "" {
		d["actor"] = e.Actor
	}
	if e.UserAgent != "" {
		d["user_agent"] = e.UserAgent
	}
	if e.FailureReason != "" {
		d["failure_reason"] = e.FailureReason
	}
	if len(e.Details) > 0 {
		details := make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			details[k] = v
		}
		d["details"] = details
	}
	return d
}

func fromDocument(d docstore.Document) Event {
	str := func(k string) string {
		s, _ := d[k].(string)
		return s
	}
	e := Event{
		ID:            d.ID(),
		Timestamp:     str(docstore.CreatedAtField),
		Category:      str("category"),
		EventType:     str("event_type"),
		Actor:         str("actor"),
		IP:            str("ip"),
		UserAgent:     str("user_agent"),
		FailureReason: str("failure_reason"),
	}
	e.Success, _ = d["success"].(bool)
	if m, ok := d["details"].(map[string]any); ok && len(m) > 0 {
		e.Details = make(map[string]string, len(m))
		for k, v := range m {
			e.Details[k] = fmt.Sprint(v)
		}
	}
	return e
}
