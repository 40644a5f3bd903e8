// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/researchhub/internal/app/features/admin"
	authgooglefeature "github.com/dalemusser/researchhub/internal/app/features/authgoogle"
	catalogfeature "github.com/dalemusser/researchhub/internal/app/features/catalog"
	errorsfeature "github.com/dalemusser/researchhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/researchhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/researchhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/researchhub/internal/app/features/logout"
	settingsfeature "github.com/dalemusser/researchhub/internal/app/features/settings"
	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"github.com/dalemusser/researchhub/internal/app/system/metrics"
	"github.com/dalemusser/researchhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, store connection, schema setup and
// Startup have completed. ResearchHub serves:
//   - the public content API under /api
//   - the admin write API under /admin/api (admin session required)
//   - sign-in under /login and /auth/google, sign-out at /logout
//   - /health and /metrics for operations
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	auditStore := audit.New(deps.Docs)
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Operations
	healthHandler := healthfeature.NewHandler(deps.Docs, deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	// Public content
	catalogHandler := catalogfeature.NewHandler(deps.Content, errLog, logger)
	r.Mount("/api", catalogfeature.Routes(catalogHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(
		sessionMgr,
		appCfg.AdminEmails,
		appCfg.GoogleClientID,
		appCfg.GoogleClientSecret,
		appCfg.BaseURL,
		appCfg.SessionKey,
		secure,
		logger,
	)
	googleHandler.Audit = auditLog
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit, 0)
	loginHandler := loginfeature.NewHandler(sessionMgr, limiter, appCfg.AdminEmails, appCfg.AdminPasswordHash, googleHandler.IsConfigured(), logger)
	loginHandler.Audit = auditLog
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	logoutHandler.Audit = auditLog
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Admin writes
	settingsHandler := settingsfeature.NewHandler(deps.Content, errLog, logger)
	settingsHandler.Audit = auditLog
	adminHandler := adminfeature.NewHandler(deps.Content, errLog, logger)
	adminHandler.Audit = auditLog
	adminHandler.AuditStore = auditStore
	r.Route("/admin/api", func(ar chi.Router) {
		ar.Use(sessionMgr.RequireAdmin)
		ar.Route("/settings", settingsHandler.MountRoutes)
		adminHandler.MountRoutes(ar)
	})

	return r, nil
}
