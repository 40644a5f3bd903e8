// internal/app/features/admin/handler.go

// Package admin serves the authenticated content write API.
package admin

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler owns the admin content handlers. Routes are mounted behind
// SessionManager.RequireAdmin.
type Handler struct {
	Store  *content.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// Optional; nil disables the audit trail and GET /audit.
	Audit      *auditlog.Logger
	AuditStore *audit.Store
}

// NewHandler constructs an admin Handler.
func NewHandler(store *content.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger, ErrLog: errLog}
}

// entityType resolves the {entityType} URL segment, answering 404 when it
// is unknown.
func entityType(w http.ResponseWriter, r *http.Request, name string) (registry.EntityType, bool) {
	et, ok := registry.Lookup(name)
	if !ok {
		uierrors.NotFound(w, "Unknown content type.")
	}
	return et, ok
}

func actor(r *http.Request) zap.Field {
	if u, ok := auth.CurrentUser(r); ok {
		return zap.String("actor", u.LoginID)
	}
	return zap.Skip()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
