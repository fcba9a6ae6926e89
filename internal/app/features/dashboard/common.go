// internal/app/features/dashboard/common.go
package dashboard

import (
	"github.com/salespulse/salespulse/internal/app/system/viewdata"
	"github.com/salespulse/salespulse/internal/domain/models"
)

type directorDashboardData struct {
	viewdata.BaseVM
	Metrics  models.DirectorateMetrics
	Degraded bool
}

type individualDashboardData struct {
	viewdata.BaseVM
	Metrics  models.IndividualMetrics
	Degraded bool
}
