// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/domain/models"
)

// UserCtx returns the user's canonical role, display name, user ID, and a
// found flag. ok=false means no authenticated user is present; the role comes
// back as "VISITOR" so templates always have something to show.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "VISITOR", "", "", false
	}
	return models.NormalizeRole(user.Role), user.DisplayName, user.ID, true
}

// Role returns the current user's canonical role and whether a user is present.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}

// HasAnyRole reports whether the current request's user has any of the given
// roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	cur, ok := Role(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == models.NormalizeRole(want) {
			return true
		}
	}
	return false
}

// IsDirector reports whether the current user is a sales director — the only
// role that sees the directorate roll-up instead of their own evaluations.
func IsDirector(r *http.Request) bool {
	return HasAnyRole(r, models.RoleSalesDirector)
}

// IsAdmin reports whether the current user is an administrator.
func IsAdmin(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin)
}
