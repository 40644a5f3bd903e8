// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Backends accepted by doc_backend.
const (
	BackendMongo     = "mongo"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging and CORS; everything specific to ResearchHub lives
// here and is passed to every lifecycle hook.
type AppConfig struct {
	// Document store selection
	DocBackend string // mongo | firestore | memory

	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Firestore configuration
	FirestoreProjectID       string
	FirestoreCredentialsFile string // blank uses application default credentials

	// Bounded wait for a content fetch
	FetchTimeout time.Duration

	// Memory backend starts with the fallback dataset when true
	SeedMemoryFallback bool

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: researchhub-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Admin sign-in
	AdminEmails       []string // normalized allowlist
	AdminPasswordHash string   // bcrypt hash for local login
	LoginRateLimit    int      // attempts per minute per client IP

	// Audit logging: all | db | log | off
	AuditLogAuth  string
	AuditLogAdmin string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL used to build the OAuth callback
	BaseURL string // e.g., "https://research.example.edu" or "http://localhost:8080"
}
