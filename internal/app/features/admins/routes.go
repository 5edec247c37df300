// internal/app/features/admins/routes.go
package admins

import (
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the admin account endpoints. Login is public;
// directory management is super admin only; profile needs any
// signed-in admin.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/admin/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleSuperAdmin))
		r.Get("/api/admin/users", h.List)
		r.Post("/api/admin/users", h.Create)
	})

	r.With(auth.RequireSignedIn).Get("/api/admin/profile", h.Profile)
}
