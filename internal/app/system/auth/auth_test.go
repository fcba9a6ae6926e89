package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/domain/models"
)

const testSessionKey = "test-session-key-for-testing-only-0123456789"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testSessionKey, "salespulse-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func testCredential() models.Credential {
	return models.Credential{
		Token: "bearer-token-abc",
		User: models.User{
			ID:          "u-42",
			DisplayName: "Dana Reyes",
			Role:        models.RoleSalesLead,
		},
	}
}

// signIn performs a SignIn and returns a follow-up request carrying the
// resulting cookies, simulating the browser's next page load.
func signIn(t *testing.T, m *auth.SessionManager, cred models.Credential) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := m.SignIn(rec, req, cred); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	next := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestCredentialRoundTrip(t *testing.T) {
	m := newManager(t)
	want := testCredential()

	next := signIn(t, m, want)

	got, ok := m.Restore(next)
	if !ok {
		t.Fatal("Restore found no session after SignIn")
	}
	if got.Token != want.Token {
		t.Errorf("Token: got %q, want %q", got.Token, want.Token)
	}
	if got.User != want.User {
		t.Errorf("User: got %+v, want %+v", got.User, want.User)
	}
}

func TestRestore_NoCookieMeansNoSession(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := m.Restore(req); ok {
		t.Error("Restore reported a session for a cookieless request")
	}
}

func TestRestore_CorruptCookieMeansNoSession(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "salespulse-test", Value: "not-a-valid-session"})

	if _, ok := m.Restore(req); ok {
		t.Error("Restore reported a session for a corrupt cookie")
	}
}

func TestRestore_IncompleteCredentialMeansNoSession(t *testing.T) {
	m := newManager(t)

	// Structurally parsable but missing the token.
	next := signIn(t, m, models.Credential{
		User: models.User{ID: "u-1", DisplayName: "X", Role: models.RoleAdmin},
	})

	if _, ok := m.Restore(next); ok {
		t.Error("Restore accepted a credential without a token")
	}
}

func TestSignOut_ClearsSession(t *testing.T) {
	m := newManager(t)
	next := signIn(t, m, testCredential())

	rec := httptest.NewRecorder()
	if err := m.SignOut(rec, next); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	// The deletion cookie must expire immediately.
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignOut wrote no cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("deletion cookie MaxAge: got %d, want -1", cookies[0].MaxAge)
	}
}

func TestSignOut_IdempotentWithoutSession(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/logout", nil)
	if err := m.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut without a session failed: %v", err)
	}
}

func TestLoadSessionUser_InjectsUser(t *testing.T) {
	m := newManager(t)
	next := signIn(t, m, testCredential())

	var seen *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
	}))

	h.ServeHTTP(httptest.NewRecorder(), next)

	if seen == nil {
		t.Fatal("no user injected into context")
	}
	if seen.ID != "u-42" || seen.Role != models.RoleSalesLead || seen.Token != "bearer-token-abc" {
		t.Errorf("unexpected session user: %+v", seen)
	}
}

func TestRequireSignedIn_RedirectsHTML(t *testing.T) {
	m := newManager(t)

	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without a session")
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fdashboard" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireSignedIn_API401(t *testing.T) {
	m := newManager(t)

	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/user", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	m := newManager(t)

	ran := false
	h := m.RequireRole(models.RoleSalesDirector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	// Wrong role → 403.
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u-1", Role: models.RoleSalesperson})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ran {
		t.Error("handler ran despite wrong role")
	}

	// Matching role → handler runs.
	req = httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u-2", Role: models.RoleSalesDirector})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !ran {
		t.Error("handler did not run for allowed role")
	}
}
