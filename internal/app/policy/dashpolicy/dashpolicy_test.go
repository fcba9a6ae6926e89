package dashpolicy

import (
	"testing"

	"github.com/salespulse/salespulse/internal/domain/models"
)

func TestDashboardView(t *testing.T) {
	cases := []struct {
		role string
		want View
	}{
		{models.RoleSalesDirector, ViewDirectorate},
		{models.RoleRegionalSalesManager, ViewIndividual},
		{models.RoleSalesLead, ViewIndividual},
		{models.RoleSalesperson, ViewIndividual},
		{models.RoleAdmin, ViewIndividual},
		{"FIELD_COACH", ViewIndividual}, // unknown roles fall back
	}
	for _, tc := range cases {
		if got := DashboardView(tc.role); got != tc.want {
			t.Errorf("DashboardView(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
