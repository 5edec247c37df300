// internal/app/features/guests/routes.go
package guests

import (
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the guest directory endpoints for admins and
// super admins.
func MountRoutes(r chi.Router, h *Handler) {
	r.With(auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).
		Get("/api/guests", h.List)
	r.With(auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).
		Get("/api/guests/export", h.Export)
}
