// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brightevents/gatepass/internal/app/store/activity"
	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	gueststore "github.com/brightevents/gatepass/internal/app/store/guests"
	"github.com/brightevents/gatepass/internal/app/system/identity"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is
idempotent. We aggregate errors so any problem is visible and startup
can fail fast. The unique indexes on guests (email, access code) are
the backstop for the conditional writes in the registration path, so a
failure here is fatal rather than a warning.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, provider *identity.Provider) error {
	var problems []string

	if err := gueststore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "guests: "+err.Error())
	}
	if err := adminstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := activity.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "activity_logs: "+err.Error())
	}
	if provider != nil {
		if err := provider.EnsureIndexes(ctx); err != nil {
			problems = append(problems, "admin_credentials: "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
