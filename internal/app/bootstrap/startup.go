// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightevents/gatepass/internal/app/store/activity"
	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. GatePass
// uses it to guarantee a super admin account exists, so a fresh deployment
// can sign in and create the rest of the admin directory.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}

	provider := identity.NewProvider(deps.GatePassMongoDatabase, []byte(appCfg.JWTSecret), appCfg.TokenTTL)
	return ensureSuperAdmin(ctx, deps.GatePassMongoDatabase, provider,
		appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, appCfg.SuperAdminName, logger)
}

// ensureSuperAdmin creates the configured super admin account when it does
// not already exist. An existing credential for the email is left untouched,
// so a changed config password never silently rotates a live account.
func ensureSuperAdmin(ctx context.Context, db *mongo.Database, provider *identity.Provider, email, password, name string, logger *zap.Logger) error {
	subject, err := provider.CreateAccount(ctx, email, password)
	if errors.Is(err, identity.ErrEmailExists) {
		logger.Info("super admin account already exists", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create super admin credential: %w", err)
	}

	admin := models.AdminUser{
		ID:          subject,
		Email:       email,
		DisplayName: name,
		Role:        models.RoleSuperAdmin,
		CreatedBy:   activity.PerformedBySystem,
	}
	if err := adminstore.New(db).Insert(ctx, &admin); err != nil {
		return fmt.Errorf("create super admin directory record: %w", err)
	}

	logger.Info("super admin account created",
		zap.String("email", email),
		zap.String("id", subject))
	return nil
}
