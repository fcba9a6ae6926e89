// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/policy/dashpolicy"
	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"
)

type Handler struct {
	Log        *zap.Logger
	API        *evalapi.Client
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger

	aggs *registry
}

func NewHandler(api *evalapi.Client, sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		API:        api,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
		aggs:       newRegistry(),
	}
}

// ServeDashboard dispatches to the role-specific view. Sales directors
// see the directorate roll-up; everyone else sees their own numbers.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch dashpolicy.DashboardView(u.Role) {
	case dashpolicy.ViewDirectorate:
		h.ServeDirector(w, r, *u)
	default:
		h.ServeIndividual(w, r, *u)
	}
}

// forceSignOut clears the session after the upstream API rejected the
// stored token, then sends the user back to the login form.
func (h *Handler) forceSignOut(w http.ResponseWriter, r *http.Request, u auth.SessionUser, err error) {
	h.Log.Warn("upstream rejected session token, signing out",
		zap.String("user_id", u.ID),
		zap.Error(err))
	h.AuditLog.SessionExpired(r.Context(), r, u.ID, u.DisplayName)
	h.aggs.drop(u.ID)
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("sign out after token rejection", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
