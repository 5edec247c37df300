// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to the check-in portal lives:
// the MongoDB connection, token signing, email delivery, and the event
// details that go into confirmation emails.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration for the admin API
	JWTSecret string        // Secret key for signing bearer tokens (must be strong in production)
	TokenTTL  time.Duration // Lifetime of issued admin tokens

	// Email delivery configuration
	MailAPIKey   string // MailerSend API key (empty means log-only delivery)
	MailFrom     string // From email address (e.g., noreply@brightevents.io)
	MailFromName string // From display name (e.g., Bright Events)

	// Event details included in confirmation and welcome emails
	EventName  string
	EventDate  string
	EventVenue string
	EventCity  string

	// Base URL of the admin portal, used in welcome emails
	PortalURL string

	// Activity logging: 'all' (db+log), 'db', 'log', or 'off'
	ActivityLogMode string

	// Super admin bootstrap (creates the account on startup when missing)
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}
