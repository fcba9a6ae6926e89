// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// MountRoutes registers the JSON endpoints on the supplied router.
// No auth middleware is required: the handlers check the session via
// auth.CurrentUser themselves so callers get JSON errors, not HTML
// redirects.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/user", h.ServeUserInfo)
	r.Get("/api/evaluatable-users", h.ServeEvaluatableUsers)
}
