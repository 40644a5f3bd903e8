// internal/app/store/content/settings.go
package content

import (
	"context"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/metrics"
	"github.com/dalemusser/researchhub/internal/domain/models"
)

// GetSettings returns the settings singleton: the first stored settings
// document, the bundled default when none is readable, or a minimal
// document carrying the default site name.
func (s *Store) GetSettings(ctx context.Context) docstore.Document {
	doc, _ := s.SettingsResult(ctx)
	return doc
}

// SettingsResult is GetSettings plus the source of the returned document,
// both taken from a single fetch.
func (s *Store) SettingsResult(ctx context.Context) (docstore.Document, Source) {
	res := s.FetchResult(ctx, registry.Settings, Params{})
	if len(res.Items) == 0 {
		return docstore.Document{"site_name": models.DefaultSiteName}, res.Source
	}
	return res.Items[0], res.Source
}

// SiteSettings is GetSettings decoded into the typed model.
func (s *Store) SiteSettings(ctx context.Context) (models.SiteSettings, error) {
	out, err := docstore.Decode[models.SiteSettings]([]docstore.Document{s.GetSettings(ctx)})
	if err != nil {
		return models.SiteSettings{}, err
	}
	return out[0], nil
}

// SaveSettings writes fields into the first settings document, creating it
// the first time. Concurrent saves never create a second document.
func (s *Store) SaveSettings(ctx context.Context, fields docstore.Document) (docstore.Document, error) {
	saved, err := s.settings.Save(ctx, fields)
	metrics.ObserveMutation(string(registry.Settings), "save", err)
	if err != nil {
		return nil, s.mutationFailed("save", registry.Settings, "", err)
	}
	saved = s.stamp(saved, true)
	docstore.NormalizeDates(saved)

	s.mu.Lock()
	st := s.stateFor(registry.Settings)
	st.applied = st.issued
	s.publish(st, []docstore.Document{saved.Clone()}, SourceLive)
	s.mu.Unlock()

	return saved, nil
}
