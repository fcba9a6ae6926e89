// internal/testutil/fixtures.go
package testutil

import (
	"time"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// EvaluationRecords returns a small fixed set of records spanning two
// months, handy for exercising metric reductions.
func EvaluationRecords(now time.Time) []models.EvaluationRecord {
	thisMonth := time.Date(now.Year(), now.Month(), 10, 9, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	return []models.EvaluationRecord{
		{
			ID:        "ev-1",
			VisitDate: thisMonth,
			Items: []models.EvaluationItem{
				{Score: 4}, {Score: 5},
			},
		},
		{
			ID:        "ev-2",
			VisitDate: lastMonth,
			Items: []models.EvaluationItem{
				{Score: 2}, {Score: 3}, {Score: 4},
			},
		},
		{
			ID:        "ev-3",
			VisitDate: thisMonth.Add(48 * time.Hour),
			Items:     nil,
		},
	}
}
