// internal/app/store/content/load.go
package content

import (
	"context"
	"sync"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InitialTypes are fetched eagerly at startup: the landing page chrome
// needs them before any route-specific fetch.
var InitialTypes = []registry.EntityType{registry.ResearchAreas, registry.Settings}

// InitialLoad fetches InitialTypes concurrently and returns the source each
// resolved to. Everything else is fetched lazily by whoever needs it.
func (s *Store) InitialLoad(ctx context.Context) map[registry.EntityType]Source {
	var (
		mu  sync.Mutex
		out = make(map[registry.EntityType]Source, len(InitialTypes))
		g   errgroup.Group
	)
	for _, t := range InitialTypes {
		g.Go(func() error {
			res := s.FetchResult(ctx, t, Params{})
			mu.Lock()
			out[t] = res.Source
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // fetches never fail

	fields := make([]zap.Field, 0, len(out))
	for t, src := range out {
		fields = append(fields, zap.String(string(t), src.String()))
	}
	s.log.Info("initial content load complete", fields...)
	return out
}

// FetchAs fetches t and decodes the items into T, one of the models types.
func FetchAs[T any](ctx context.Context, s *Store, t registry.EntityType, p Params) ([]T, error) {
	return docstore.Decode[T](s.Fetch(ctx, t, p))
}
