// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/normalize"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ResearchHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: RESEARCHHUB_MONGO_URI, RESEARCHHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "doc_backend", Default: BackendMongo, Desc: "Document store: 'mongo', 'firestore' or 'memory'"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "research_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "firestore_project_id", Default: "", Desc: "Google Cloud project id for Firestore"},
	{Name: "firestore_credentials_file", Default: "", Desc: "Service account JSON (blank uses default credentials)"},

	{Name: "fetch_timeout", Default: "10s", Desc: "Bounded wait for a content fetch before fallback (e.g., 10s)"},
	{Name: "seed_memory_fallback", Default: false, Desc: "Seed the memory backend with the fallback dataset"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "researchhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session lifetime"},

	// Admin sign-in
	{Name: "admin_emails", Default: "", Desc: "Comma-separated admin email allowlist"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash for local admin login (blank disables it)"},
	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts per minute per client IP"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL (OAuth callback)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, RESEARCHHUB_* for app) and
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RESEARCHHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DocBackend: normalize.Enum(appValues.String("doc_backend")),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		FirestoreProjectID:       appValues.String("firestore_project_id"),
		FirestoreCredentialsFile: appValues.String("firestore_credentials_file"),

		FetchTimeout:       appValues.Duration("fetch_timeout", 10*time.Second),
		SeedMemoryFallback: appValues.Bool("seed_memory_fallback"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		AdminEmails:       normalize.EmailList(appValues.String("admin_emails")),
		AdminPasswordHash: appValues.String("admin_password_hash"),
		LoginRateLimit:    appValues.Int("login_rate_limit"),

		AuditLogAuth:  normalize.Enum(appValues.String("audit_log_auth")),
		AuditLogAdmin: normalize.Enum(appValues.String("audit_log_admin")),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: appValues.String("base_url"),
	}

	if appCfg.DocBackend == "" {
		appCfg.DocBackend = BackendMongo
	}
	if len(appCfg.AdminEmails) == 0 {
		logger.Warn("admin_emails is empty; nobody can sign in to the admin API")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked before connecting so that typos fail fast.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.DocBackend {
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required for the mongo backend")
		}
	case BackendFirestore:
		if appCfg.FirestoreProjectID == "" {
			return fmt.Errorf("firestore backend requires firestore_project_id")
		}
	case BackendMemory:
		logger.Warn("using the in-memory document store; content is lost on restart")
	default:
		return fmt.Errorf("unknown doc_backend %q (want mongo, firestore or memory)", appCfg.DocBackend)
	}

	if appCfg.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", appCfg.FetchTimeout)
	}
	if appCfg.SessionName == "" {
		return fmt.Errorf("session_name is required")
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch mode {
		case "", auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
		default:
			return fmt.Errorf("%s must be all, db, log or off, got %q", key, mode)
		}
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}
	return nil
}
