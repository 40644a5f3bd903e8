package catalog

import "github.com/go-chi/chi/v5"

// Routes returns the public content router, mounted under /api.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/settings", h.ServeSettings)
	r.Get("/{entityType}", h.ServeList)
	return r
}
