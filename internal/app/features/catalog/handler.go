// internal/app/features/catalog/handler.go

// Package catalog serves the public, read-only content API.
package catalog

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves content reads through the orchestrator.
type Handler struct {
	Store  *content.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a catalog Handler.
func NewHandler(store *content.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger, ErrLog: errLog}
}

// listResponse is the body of GET /api/{entityType}.
type listResponse struct {
	EntityType string              `json:"entity_type"`
	Source     string              `json:"source"`
	Count      int                 `json:"count"`
	Items      []docstore.Document `json:"items"`
}

// ServeList handles GET /api/{entityType}.
//
// Reads never fail: a store outage answers 200 with placeholder or empty
// content and "source" says which. Drafts are never listed.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	et, ok := registry.Lookup(chi.URLParam(r, "entityType"))
	if !ok {
		uierrors.NotFound(w, "Unknown content type.")
		return
	}
	p, err := ParseParams(r.URL.Query())
	if err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}

	if registry.HasDrafts(et) {
		h.servePublished(w, r, et, p)
		return
	}

	res := h.Store.FetchResult(r.Context(), et, p)
	writeJSON(w, http.StatusOK, listResponse{
		EntityType: string(et),
		Source:     res.Source.String(),
		Count:      len(res.Items),
		Items:      res.Items,
	})
}

// servePublished lists a type with drafts. Only published documents are
// served; asking for any other status yields an empty list.
func (h *Handler) servePublished(w http.ResponseWriter, r *http.Request, et registry.EntityType, p content.Params) {
	if p.Status != "" && p.Status != publishedParams.Status {
		writeJSON(w, http.StatusOK, listResponse{
			EntityType: string(et),
			Source:     content.SourceEmpty.String(),
			Items:      []docstore.Document{},
		})
		return
	}

	res := h.Store.FetchResult(r.Context(), et, publishedParams)
	items := refine(res.Items, p)
	writeJSON(w, http.StatusOK, listResponse{
		EntityType: string(et),
		Source:     res.Source.String(),
		Count:      len(items),
		Items:      items,
	})
}

// ServeSettings handles GET /api/settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.GetSettings(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
