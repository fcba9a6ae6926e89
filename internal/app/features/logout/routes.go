// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes deliberately skips the signed-in gate: logging out twice, or
// with a stale cookie, should land on the home page rather than bounce
// through the login form.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogout)
	return r
}
