// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

// Handler serves small JSON endpoints about the current session.
type Handler struct {
	Log *zap.Logger
	API *evalapi.Client
}

func NewHandler(api *evalapi.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, API: api}
}

// ServeUserInfo returns JSON with the current user's authentication
// status and identity.
//
// Response format:
//
//	{ "isAuthenticated": bool, "id": "...", "name": "...", "role": "...", "role_label": "..." }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	u, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"id":              "",
			"name":            "",
			"role":            "",
			"role_label":      "",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"id":              u.ID,
		"name":            u.DisplayName,
		"role":            u.Role,
		"role_label":      models.RoleLabel(u.Role),
	})
}

// ServeEvaluatableUsers proxies the upstream list of users the current
// user may evaluate.
//
// GET /api/evaluatable-users
func (h *Handler) ServeEvaluatableUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	u, ok := auth.CurrentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "sign in required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.API.FetchEvaluatableUsers(ctx, u.Token)
	switch {
	case evalapi.IsAuthError(err):
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "session expired"})
		return
	case err != nil:
		h.Log.Error("fetch evaluatable users", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "evaluation service unavailable"})
		return
	}

	_ = json.NewEncoder(w).Encode(users)
}
