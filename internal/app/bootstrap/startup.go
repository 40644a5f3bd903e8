// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after the store is connected and the schema is in place,
// before the HTTP handler is built. It warms the orchestrator with the
// research areas and the site settings so the first requests see shared
// state. A failed read falls back or stays empty; it never aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	sources := deps.Content.InitialLoad(ctx)
	if err := deps.Content.LastError(); err != nil {
		logger.Warn("initial load degraded", zap.Error(err), zap.Int("types", len(sources)))
	}

	site, err := deps.Content.SiteSettings(ctx)
	if err != nil {
		logger.Warn("site settings do not decode", zap.Error(err))
		return nil
	}
	logger.Info("site settings loaded",
		zap.String("site_name", site.SiteName),
		zap.String("settings_source", sources[registry.Settings].String()))
	return nil
}
