// internal/app/features/settings/handler.go
package settings

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/researchhub/internal/app/features/admin"
	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/formutil"
	"go.uber.org/zap"
)

// Handler owns the admin-facing site settings handlers.
type Handler struct {
	Store  *content.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
}

// NewHandler constructs a Handler over the content orchestrator.
func NewHandler(store *content.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}

// ServeSettings handles GET /admin/api/settings. Unlike the public
// endpoint it reports whether the values come from the store.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	doc, src := h.Store.SettingsResult(r.Context())
	resp := struct {
		Source   string `json:"source"`
		Settings any    `json:"settings"`
	}{Source: src.String(), Settings: doc}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSettings handles PUT /admin/api/settings. Only the submitted
// fields change; the singleton is created on first save.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	fields, err := formutil.DecodeDocument(w, r)
	if err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if fields, err = admin.Prepare(registry.Settings, fields); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}

	saved, err := h.Store.SaveSettings(r.Context(), fields)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save settings failed", err, "Failed to save settings.")
		return
	}
	h.Log.Info("settings saved", zap.String("id", saved.ID()))
	h.Audit.SettingsSaved(r.Context(), r, saved.ID())
	writeJSON(w, http.StatusOK, saved)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
