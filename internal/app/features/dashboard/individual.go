// internal/app/features/dashboard/individual.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/app/system/viewdata"
	"github.com/salespulse/salespulse/internal/domain/models"
)

// ServeIndividual renders the personal dashboard for managers, leads,
// salespeople, and any role the upstream API introduces later.
func (h *Handler) ServeIndividual(w http.ResponseWriter, r *http.Request, u auth.SessionUser) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	agg := h.aggs.forUser(u.ID)
	snap := agg.Refresh(ctx, u.Role, func(ctx context.Context) (Snapshot, error) {
		records, err := h.API.FetchOwnEvaluations(ctx, u.Token)
		if err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Individual: ReduceIndividual(records, time.Now().UTC())}, nil
	})

	if snap.State == StateFailed && evalapi.IsAuthError(snap.Err) {
		h.forceSignOut(w, r, u, snap.Err)
		return
	}
	if snap.State == StateFailed {
		h.Log.Error("evaluation fetch failed, rendering zeros",
			zap.String("user_id", u.ID),
			zap.String("role", u.Role),
			zap.Error(snap.Err))
	}

	templates.Render(w, r, "individual_dashboard", individualDashboardData{
		BaseVM:   viewdata.NewBaseVM(r, models.RoleLabel(u.Role)+" Dashboard", "/"),
		Metrics:  snap.Individual,
		Degraded: snap.State == StateFailed,
	})
}
