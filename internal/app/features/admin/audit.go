// internal/app/features/admin/audit.go
package admin

import (
	"context"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

const maxAuditLimit = 500

// ServeAudit handles GET /admin/api/audit: the newest audit events,
// optionally filtered by ?category=auth|admin, capped by ?limit=.
func (h *Handler) ServeAudit(w http.ResponseWriter, r *http.Request) {
	if h.AuditStore == nil {
		uierrors.NotFound(w, "Audit trail is not enabled.")
		return
	}

	limit := 100
	if s := query.Get(r, "limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			uierrors.BadRequest(w, "limit must be a positive integer.")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	events, err := h.AuditStore.Recent(ctx, query.Get(r, "category"), limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "read audit events failed", err, "Could not load the audit trail.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(events), "events": events})
}
