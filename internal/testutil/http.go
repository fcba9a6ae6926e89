// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/domain/models"
)

/*─────────────────────────────────*
|  Canned session users            |
*─────────────────────────────────*/

func DirectorUser() auth.SessionUser {
	return auth.SessionUser{
		ID:          "u-dir-1",
		DisplayName: "Morgan Vale",
		Role:        models.RoleSalesDirector,
		Token:       "tok-director",
	}
}

func ManagerUser() auth.SessionUser {
	return auth.SessionUser{
		ID:          "u-mgr-1",
		DisplayName: "Riley Chen",
		Role:        models.RoleRegionalSalesManager,
		Token:       "tok-manager",
	}
}

func LeadUser() auth.SessionUser {
	return auth.SessionUser{
		ID:          "u-lead-1",
		DisplayName: "Dana Reyes",
		Role:        models.RoleSalesLead,
		Token:       "tok-lead",
	}
}

func SalespersonUser() auth.SessionUser {
	return auth.SessionUser{
		ID:          "u-sp-1",
		DisplayName: "Alex Okafor",
		Role:        models.RoleSalesperson,
		Token:       "tok-salesperson",
	}
}

func AdminUser() auth.SessionUser {
	return auth.SessionUser{
		ID:          "u-adm-1",
		DisplayName: "Sam Ito",
		Role:        models.RoleAdmin,
		Token:       "tok-admin",
	}
}

/*─────────────────────────────────*
|  Request helpers                 |
*─────────────────────────────────*/

// NewAuthenticatedRequest builds a request whose context already carries
// the given session user, bypassing cookie decoding.
func NewAuthenticatedRequest(method, target string, u auth.SessionUser) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(r, &u)
}

// AssertStatus fails the test when the recorded status differs.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
