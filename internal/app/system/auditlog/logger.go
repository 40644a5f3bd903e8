// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"github.com/dalemusser/researchhub/internal/app/system/ratelimit"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Destinations accepted by Config fields.
const (
	ModeAll = "all" // store + zap
	ModeDB  = "db"  // store only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls sign-in and sign-out events.
	Auth string
	// Admin controls content and settings writes.
	Admin string
}

// Logger records audit events to the document store (via audit.Store)
// and to structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so handlers and tests can leave it unset.
// A failed store write is logged and otherwise ignored.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = ModeAll
	}
	if setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}

	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		// The request may already be finishing; the write gets its own deadline.
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Short())
		defer cancel()
		if err := l.store.Log(wctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func base(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func actorOf(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.LoginID
	}
	return ""
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, loginID, authMethod string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.Actor = loginID
	e.Success = true
	e.Details = map[string]string{"auth_method": authMethod}
	l.Log(ctx, e)
}

// LoginFailed logs a rejected sign-in attempt.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, loginID, authMethod, reason string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailed)
	e.Actor = loginID
	e.FailureReason = reason
	e.Details = map[string]string{"auth_method": authMethod}
	l.Log(ctx, e)
}

// Logout logs a sign-out by the current user.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	e := base(r, audit.CategoryAuth, audit.EventLogout)
	e.Actor = actorOf(r)
	e.Success = true
	l.Log(ctx, e)
}

// --- Admin Events ---

// ContentCreated logs a new content document.
func (l *Logger) ContentCreated(ctx context.Context, r *http.Request, entityType, id string) {
	l.content(ctx, r, audit.EventContentCreated, entityType, id)
}

// ContentUpdated logs an edit to a content document.
func (l *Logger) ContentUpdated(ctx context.Context, r *http.Request, entityType, id string) {
	l.content(ctx, r, audit.EventContentUpdated, entityType, id)
}

// ContentDeleted logs a removed content document.
func (l *Logger) ContentDeleted(ctx context.Context, r *http.Request, entityType, id string) {
	l.content(ctx, r, audit.EventContentDeleted, entityType, id)
}

// SettingsSaved logs a write to the site settings singleton.
func (l *Logger) SettingsSaved(ctx context.Context, r *http.Request, id string) {
	l.content(ctx, r, audit.EventSettingsSaved, "settings", id)
}

func (l *Logger) content(ctx context.Context, r *http.Request, eventType, entityType, id string) {
	e := base(r, audit.CategoryAdmin, eventType)
	e.Actor = actorOf(r)
	e.Success = true
	e.Details = map[string]string{"entity_type": entityType, "id": id}
	l.Log(ctx, e)
}
