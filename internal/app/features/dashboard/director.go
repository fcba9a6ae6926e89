// internal/app/features/dashboard/director.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/app/system/viewdata"
)

// ServeDirector renders the directorate roll-up. The upstream API
// computes the roll-up itself; the numbers pass through untouched.
func (h *Handler) ServeDirector(w http.ResponseWriter, r *http.Request, u auth.SessionUser) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	agg := h.aggs.forUser(u.ID)
	snap := agg.Refresh(ctx, u.Role, func(ctx context.Context) (Snapshot, error) {
		dm, err := h.API.FetchDirectorateSummary(ctx, u.Token)
		if err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Directorate: dm}, nil
	})

	if snap.State == StateFailed && evalapi.IsAuthError(snap.Err) {
		h.forceSignOut(w, r, u, snap.Err)
		return
	}
	if snap.State == StateFailed {
		h.Log.Error("directorate summary fetch failed, rendering zeros",
			zap.String("user_id", u.ID),
			zap.Error(snap.Err))
	}

	templates.Render(w, r, "director_dashboard", directorDashboardData{
		BaseVM:   viewdata.NewBaseVM(r, "Directorate Dashboard", "/"),
		Metrics:  snap.Directorate,
		Degraded: snap.State == StateFailed,
	})
}
