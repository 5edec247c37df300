// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	activityfeedfeature "github.com/brightevents/gatepass/internal/app/features/activityfeed"
	adminsfeature "github.com/brightevents/gatepass/internal/app/features/admins"
	checkinfeature "github.com/brightevents/gatepass/internal/app/features/checkin"
	guestsfeature "github.com/brightevents/gatepass/internal/app/features/guests"
	healthfeature "github.com/brightevents/gatepass/internal/app/features/health"
	registerfeature "github.com/brightevents/gatepass/internal/app/features/register"
	"github.com/brightevents/gatepass/internal/app/store/activity"
	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	gueststore "github.com/brightevents/gatepass/internal/app/store/guests"
	"github.com/brightevents/gatepass/internal/app/system/activitylog"
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/app/system/limits"
	"github.com/brightevents/gatepass/internal/app/system/mailer"
	"github.com/brightevents/gatepass/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// GatePass builds its stores and system services here, applies the token
// middleware globally, and mounts the feature routers: registration,
// check-in, the guest directory, admin management, and the activity feed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.GatePassMongoDatabase

	// Stores.
	guests := gueststore.New(db)
	admins := adminstore.New(db)
	activityStore := activity.New(db)

	// Identity provider: credentials plus token issue/verify.
	provider := identity.NewProvider(db, []byte(appCfg.JWTSecret), appCfg.TokenTTL)

	// Activity logger: zap plus the activity_logs collection, per config.
	activityLog := activitylog.New(activityStore, logger, appCfg.ActivityLogMode)

	// Email delivery. Without an API key emails are logged instead of
	// sent, which keeps local development working offline.
	var mail mailer.Sender
	if appCfg.MailAPIKey == "" {
		logger.Warn("mail_api_key not set; emails will be logged, not sent")
		mail = mailer.NewLogSender(logger)
	} else {
		ms, err := mailer.NewMailerSend(appCfg.MailAPIKey, appCfg.MailFromName, appCfg.MailFrom)
		if err != nil {
			logger.Error("mailer init failed", zap.Error(err))
			return nil, err
		}
		mail = ms
	}

	event := mailer.EventDetails{
		Name:  appCfg.EventName,
		Date:  appCfg.EventDate,
		Venue: appCfg.EventVenue,
		City:  appCfg.EventCity,
	}

	r := chi.NewRouter()

	// Cap request bodies before anything reads them.
	r.Use(limits.JSONBody)

	// Global token middleware: resolves a bearer token to its directory
	// record so handlers can use auth.CurrentUser(r). Requests without a
	// token pass through anonymously.
	authMW := auth.NewMiddleware(provider, admins)
	r.Use(authMW.LoadIdentity)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.GatePassMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public: guest registration and the check-in desk.
	registerHandler := registerfeature.NewHandler(guests, activityLog, mail, event, logger)
	registerHandler.Limiter = ratelimit.NewRegistrationLimiter()
	registerfeature.MountRoutes(r, registerHandler)

	checkinHandler := checkinfeature.NewHandler(guests, activityLog, mail, event, logger)
	checkinfeature.MountRoutes(r, checkinHandler)

	// Admin-only: guest directory, admin management, activity feed.
	guestsHandler := guestsfeature.NewHandler(guests, logger)
	guestsfeature.MountRoutes(r, guestsHandler)

	adminsHandler := adminsfeature.NewHandler(admins, provider, activityLog, mail, event, appCfg.PortalURL, logger)
	adminsHandler.Limiter = ratelimit.NewLoginLimiter()
	adminsfeature.MountRoutes(r, adminsHandler)

	feedHandler := activityfeedfeature.NewHandler(activityStore, logger)
	activityfeedfeature.MountRoutes(r, feedHandler)

	return r, nil
}
