package admin

import (
	"fmt"
	"net/http"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/formutil"
	"github.com/dalemusser/researchhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/researchhub/internal/app/system/inputval"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// richTextFields hold user-authored HTML and are sanitized on write.
var richTextFields = map[registry.EntityType][]string{
	registry.News:   {"content"},
	registry.Events: {"content"},
}

// emailFields and urlFields are validated when set to a non-empty string.
var (
	emailFields = []string{"email", "contact_email"}
	urlFields   = []string{"link", "google_calendar_link", "google_calendar_url"}
)

// Prepare sanitizes and validates fields for a write to t. It mutates and
// returns fields.
func Prepare(t registry.EntityType, fields docstore.Document) (docstore.Document, error) {
	for _, f := range richTextFields[t] {
		if s, ok := fields[f].(string); ok {
			fields[f] = htmlsanitize.PrepareContent(s)
		}
	}
	for _, f := range emailFields {
		if s, ok := fields[f].(string); ok && s != "" && !inputval.IsValidEmail(s) {
			return nil, fmt.Errorf("%s is not a valid email address", f)
		}
	}
	for _, f := range urlFields {
		if s, ok := fields[f].(string); ok && s != "" && !inputval.IsHTTPURL(s) {
			return nil, fmt.Errorf("%s must be an http(s) URL", f)
		}
	}
	return fields, nil
}

func (h *Handler) readFields(w http.ResponseWriter, r *http.Request, t registry.EntityType) (docstore.Document, bool) {
	fields, err := formutil.DecodeDocument(w, r)
	if err != nil {
		uierrors.BadRequest(w, err.Error())
		return nil, false
	}
	if fields, err = Prepare(t, fields); err != nil {
		uierrors.BadRequest(w, err.Error())
		return nil, false
	}
	return fields, true
}

// HandleCreate handles POST /admin/api/{entityType}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	et, ok := entityType(w, r, chi.URLParam(r, "entityType"))
	if !ok {
		return
	}
	fields, ok := h.readFields(w, r, et)
	if !ok {
		return
	}

	created, err := h.Store.Create(r.Context(), et, fields)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create content failed", err, "Could not save. Nothing was changed.")
		return
	}
	h.Log.Info("content created", zap.String("entity_type", string(et)), zap.String("id", created.ID()), actor(r))
	h.Audit.ContentCreated(r.Context(), r, string(et), created.ID())
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PATCH /admin/api/{entityType}/{id}. Fields absent
// from the body are untouched; "" and null clear a field.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	et, ok := entityType(w, r, chi.URLParam(r, "entityType"))
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	fields, ok := h.readFields(w, r, et)
	if !ok {
		return
	}

	merged, err := h.Store.Update(r.Context(), et, id, fields)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update content failed", err, "Could not save. Nothing was changed.")
		return
	}
	h.Log.Info("content updated", zap.String("entity_type", string(et)), zap.String("id", id), actor(r))
	h.Audit.ContentUpdated(r.Context(), r, string(et), id)
	writeJSON(w, http.StatusOK, merged)
}

// HandleDelete handles DELETE /admin/api/{entityType}/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	et, ok := entityType(w, r, chi.URLParam(r, "entityType"))
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.Store.Delete(r.Context(), et, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete content failed", err, "Could not delete. Nothing was changed.")
		return
	}
	h.Log.Info("content deleted", zap.String("entity_type", string(et)), zap.String("id", id), actor(r))
	h.Audit.ContentDeleted(r.Context(), r, string(et), id)
	w.WriteHeader(http.StatusNoContent)
}
