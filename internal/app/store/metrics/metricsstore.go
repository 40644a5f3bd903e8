// internal/app/store/metrics/metricsstore.go
package metricsstore

import (
	"context"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
)

// Counts maps each content type to the number of live documents stored for
// it. Fallback content is never counted.
type Counts map[registry.EntityType]int

// FetchDashboardCounts returns the per-type totals shown on the admin
// dashboard. Intentionally tolerant: on error it returns 0 for that type.
func FetchDashboardCounts(ctx context.Context, docs docstore.Client) Counts {
	out := make(Counts)
	for _, t := range registry.All() {
		if t == registry.Settings {
			continue
		}
		found, err := docs.Query(ctx, registry.PhysicalName(t), docstore.Query{})
		if err != nil {
			out[t] = 0
			continue
		}
		out[t] = len(found)
	}
	return out
}
