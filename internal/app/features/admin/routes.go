package admin

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the content write routes on r, which the caller has
// already wrapped in admin authentication.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/counts", h.ServeCounts)
	r.Get("/audit", h.ServeAudit)
	r.Post("/{entityType}", h.HandleCreate)
	r.Patch("/{entityType}/{id}", h.HandleUpdate)
	r.Delete("/{entityType}/{id}", h.HandleDelete)
}
