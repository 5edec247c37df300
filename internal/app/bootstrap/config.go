// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for GatePass.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: GATEPASS_MONGO_URI, GATEPASS_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "gatepass", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Token signing for the admin API
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Token signing key (must be strong in production)"},
	{Name: "token_ttl", Default: "12h", Desc: "Lifetime of issued admin tokens (e.g., 12h, 30m)"},

	// Email delivery configuration
	{Name: "mail_api_key", Default: "", Desc: "MailerSend API key (blank logs emails instead of sending)"},
	{Name: "mail_from", Default: "noreply@brightevents.io", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Bright Events", Desc: "From display name"},

	// Event details included in guest-facing emails
	{Name: "event_name", Default: "", Desc: "Event name shown in confirmation emails"},
	{Name: "event_date", Default: "", Desc: "Event date shown in confirmation emails"},
	{Name: "event_venue", Default: "", Desc: "Event venue shown in confirmation emails"},
	{Name: "event_city", Default: "", Desc: "Event city shown in confirmation emails"},

	// Base URL for the admin portal (used in welcome emails)
	{Name: "portal_url", Default: "http://localhost:3000", Desc: "Base URL of the admin portal"},

	// Activity logging settings
	{Name: "activity_log", Default: "all", Desc: "Activity logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the super admin account (created on startup if missing)"},
	{Name: "superadmin_password", Default: "", Desc: "Initial password for the super admin account"},
	{Name: "superadmin_name", Default: "Super Admin", Desc: "Display name for the super admin account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GATEPASS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GATEPASS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		TokenTTL:  appValues.Duration("token_ttl", 12*time.Hour),

		MailAPIKey:   appValues.String("mail_api_key"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		EventName:  appValues.String("event_name"),
		EventDate:  appValues.String("event_date"),
		EventVenue: appValues.String("event_venue"),
		EventCity:  appValues.String("event_city"),

		PortalURL: appValues.String("portal_url"),

		ActivityLogMode: appValues.String("activity_log"),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
		SuperAdminName:     appValues.String("superadmin_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// GatePass validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses to run in
// production with the development token key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be set in production")
	}

	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}

	// A super admin bootstrap needs both halves of the credential.
	if appCfg.SuperAdminEmail != "" && appCfg.SuperAdminPassword == "" {
		return fmt.Errorf("superadmin_password must be set when superadmin_email is set")
	}

	return nil
}
