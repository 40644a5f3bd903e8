package admin

import (
	"net/http"

	metricsstore "github.com/dalemusser/researchhub/internal/app/store/metrics"
)

// ServeCounts handles GET /admin/api/counts: live document totals per
// content type for the dashboard.
func (h *Handler) ServeCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metricsstore.FetchDashboardCounts(r.Context(), h.Store.Docs()))
}
