// internal/app/features/errors/routes.go
package errors

import "github.com/go-chi/chi/v5"

// MountRoutes registers the error pages on the top-level router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/forbidden", h.Forbidden)
	r.Get("/unauthorized", h.Unauthorized)
}
