// Package dashpolicy decides which dashboard surface each role sees.
//
// Rules:
//   - Sales directors see the directorate roll-up computed upstream.
//   - Every other role, including roles the upstream API introduces
//     later, sees the individual dashboard built from their own
//     evaluation records.
package dashpolicy

import (
	"github.com/salespulse/salespulse/internal/domain/models"
)

// View identifies a dashboard surface.
type View int

const (
	ViewIndividual View = iota
	ViewDirectorate
)

func (v View) String() string {
	if v == ViewDirectorate {
		return "directorate"
	}
	return "individual"
}

// DashboardView maps a normalized role to the dashboard it gets.
func DashboardView(role string) View {
	if role == models.RoleSalesDirector {
		return ViewDirectorate
	}
	return ViewIndividual
}
