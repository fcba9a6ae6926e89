// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// credentialKey is the single session value under which the serialized
// Credential (token + user snapshot) lives. Absence means "no session";
// a value that fails to parse is treated the same way, never as a fault.
const credentialKey = "credential"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what LoadSessionUser restores from the cookie and injects
// into r.Context(). The token rides along so handlers can call the
// evaluation API on the user's behalf.
type SessionUser struct {
	ID          string
	DisplayName string
	Role        string
	Token       string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// Token returns the bearer token of the signed-in user, or "" if there is
// no session.
func Token(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return u.Token
	}
	return ""
}

// WithTestUser injects a session user directly into the request context.
// Test helper only; production code goes through LoadSessionUser.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store that persists the evaluation-API
// credential across reloads. Restoring a session never touches the network;
// an expired token is only discovered on the first authorized API call.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager with the given signing key and
// cookie settings. The secure flag controls the Secure cookie attribute:
// production wants Secure cookies, local dev over http must not.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// Store exposes the underlying cookie store (logout needs its options to
// build a matching deletion cookie).
func (m *SessionManager) Store() *sessions.CookieStore {
	return m.store
}

// GetSession returns the request's session. A decode error still yields a
// usable fresh session; callers decide whether the error matters.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// SignIn persists the credential in the session cookie. Nothing is written
// unless the save succeeds, so a failed login never leaves a partial
// credential behind.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, cred models.Credential) error {
	sess, err := m.GetSession(r)
	if err != nil {
		// Undecodable prior cookie; we are about to overwrite it anyway.
		m.log.Warn("session cookie invalid at sign-in, using fresh session", zap.Error(err))
	}

	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("serialize credential: %w", err)
	}
	sess.Values[credentialKey] = string(raw)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut clears the persisted credential by expiring the cookie. Calling it
// with no active session is a no-op that still succeeds.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("session decode failed during sign-out", zap.Error(err))
	}

	// Match the original store settings so the deletion cookie actually
	// replaces the one the browser holds.
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1 // delete immediately

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Restore reads and validates the persisted credential without touching the
// network. ok is false when the cookie is absent, unparsable, or structurally
// incomplete — all of which mean "no session".
func (m *SessionManager) Restore(r *http.Request) (models.Credential, bool) {
	sess, err := m.GetSession(r)
	if err != nil {
		// Stale or tampered cookies fail to decode all the time; only
		// other store failures are worth logging.
		var scErr securecookie.Error
		if !errors.As(err, &scErr) || !scErr.IsDecode() {
			m.log.Warn("session store error", zap.Error(err))
		}
		return models.Credential{}, false
	}

	raw, ok := sess.Values[credentialKey].(string)
	if !ok || raw == "" {
		return models.Credential{}, false
	}

	var cred models.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		m.log.Warn("persisted credential is unparsable, treating as no session", zap.Error(err))
		return models.Credential{}, false
	}
	if !cred.Valid() {
		return models.Credential{}, false
	}
	return cred, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the restored user into context if a structurally
// valid credential is present. It never fails a request.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cred, ok := m.Restore(r); ok {
			r = withUser(r, &SessionUser{
				ID:          cred.User.ID,
				DisplayName: cred.User.DisplayName,
				Role:        models.NormalizeRole(cred.User.Role),
				Token:       cred.Token,
			})
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// HTML callers get a 303 to /login with a return param; others get a 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
// Not signed in → 401 semantics; wrong role → 403 semantics.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[models.NormalizeRole(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				if wantsHTML(r) {
					ret := url.QueryEscape(currentURI(r))
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if _, has := set[models.NormalizeRole(u.Role)]; !has {
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
