// internal/app/features/register/routes.go
package register

import "github.com/go-chi/chi/v5"

// MountRoutes registers POST /api/register on the supplied router.
// Registration is public; no auth middleware applies.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/register", h.Serve)
}
