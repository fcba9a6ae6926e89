// internal/app/features/dashboard/metrics.go
package dashboard

import (
	"math"
	"time"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// ReduceIndividual folds a user's evaluation records into the summary
// numbers the individual dashboard shows.
//
// AverageScore is the mean of each record's own average, not the mean
// of every item score pooled together. Upstream reports the same
// number, so a record with two items counts exactly as much as a
// record with ten.
func ReduceIndividual(records []models.EvaluationRecord, now time.Time) models.IndividualMetrics {
	m := models.IndividualMetrics{TotalEvaluations: len(records)}
	if len(records) == 0 {
		return m
	}

	var avgSum float64
	for _, rec := range records {
		m.TotalScore += rec.ItemTotal()
		avgSum += rec.Average()
		if rec.VisitDate.Year() == now.Year() && rec.VisitDate.Month() == now.Month() {
			m.ThisMonth++
		}
	}
	m.AverageScore = round1(avgSum / float64(len(records)))
	return m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
