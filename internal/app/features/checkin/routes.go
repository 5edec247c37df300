// internal/app/features/checkin/routes.go
package checkin

import "github.com/go-chi/chi/v5"

// MountRoutes registers the check-in desk endpoints. The endpoints
// work without a signed-in identity (shared stations attribute actions
// to "Staff"); a bearer token, when present, attributes them to the
// signed-in admin.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/check-in/search", h.Search)
	r.Post("/api/check-in/confirm", h.Confirm)
}
