// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/app/system/viewdata"
)

type Handler struct {
	Log        *zap.Logger
	API        *evalapi.Client
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
}

func NewHandler(api *evalapi.Client, sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		API:        api,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	LoginID   string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Straight to the dashboard.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormWithError(w, r, "Invalid form data.", "")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")

	if loginID == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your login ID and password.", loginID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cred, err := h.API.Authenticate(ctx, loginID, password)
	switch {
	case evalapi.IsAuthError(err):
		h.AuditLog.LoginFailed(ctx, r, loginID, "bad credentials")
		h.renderFormWithError(w, r, "Login ID or password is incorrect.", loginID)
		return
	case err != nil:
		h.Log.Error("authenticate against evaluation service", zap.Error(err))
		h.AuditLog.LoginFailed(ctx, r, loginID, "evaluation service unavailable")
		h.renderFormWithError(w, r, "The evaluation service is unavailable right now. Please try again shortly.", loginID)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, cred); err != nil {
		h.Log.Error("save session", zap.Error(err))
		h.renderFormWithError(w, r, "A server error occurred. Please try again.", loginID)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, cred.User.ID, cred.User.DisplayName, cred.User.Role)

	ret := strings.TrimSpace(r.FormValue("return"))
	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, loginID string) {
	// From POST, "return" is a form field; from GET it rides the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: ret,
	})
}
