// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports,
// TLS, logging level, request limits). AppConfig is everything
// specific to SalesPulse: where the evaluation API lives, how session
// cookies are signed, and where audit events go.
type AppConfig struct {
	// Upstream evaluation API
	EvalAPIBaseURL string        // Base URL of the evaluation API (e.g., https://api.example.com)
	EvalAPITimeout time.Duration // HTTP client timeout for evaluation API calls

	// MongoDB connection configuration (audit event storage)
	MongoURI      string
	MongoDatabase string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Audit logging
	AuditLogAuth string // "all" (db+log), "db", "log", or "off"
}
