// internal/app/features/activityfeed/routes.go
package activityfeed

import (
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers GET /api/admin/logs for super admins only.
func MountRoutes(r chi.Router, h *Handler) {
	r.With(auth.RequireRole(models.RoleSuperAdmin)).
		Get("/api/admin/logs", h.Serve)
}
