// internal/app/features/dashboard/metrics_test.go
package dashboard

import (
	"testing"
	"time"

	"github.com/salespulse/salespulse/internal/domain/models"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func rec(id string, visit time.Time, scores ...float64) models.EvaluationRecord {
	items := make([]models.EvaluationItem, len(scores))
	for i, s := range scores {
		items[i] = models.EvaluationItem{Score: s}
	}
	return models.EvaluationRecord{ID: id, VisitDate: visit, Items: items}
}

func TestReduceIndividualEmpty(t *testing.T) {
	got := ReduceIndividual(nil, testNow)
	want := models.IndividualMetrics{}
	if got != want {
		t.Errorf("got %+v, want zero metrics", got)
	}
}

func TestReduceIndividualCounts(t *testing.T) {
	records := []models.EvaluationRecord{
		rec("ev-1", testNow, 4, 5),
		rec("ev-2", testNow.AddDate(0, -1, 0), 2, 3, 4),
	}
	got := ReduceIndividual(records, testNow)

	if got.TotalEvaluations != 2 {
		t.Errorf("TotalEvaluations = %d, want 2", got.TotalEvaluations)
	}
	if got.TotalScore != 18 {
		t.Errorf("TotalScore = %v, want 18", got.TotalScore)
	}
	if got.ThisMonth != 1 {
		t.Errorf("ThisMonth = %d, want 1", got.ThisMonth)
	}
}

// The average is the mean of each record's own average. With record
// averages 4.5 and 3.0 that is 3.75, rounded to 3.8. A pooled mean of
// all five items would be 3.6, which is not what upstream reports.
func TestReduceIndividualAverageIsMeanOfRecordAverages(t *testing.T) {
	records := []models.EvaluationRecord{
		rec("ev-1", testNow, 4, 5),
		rec("ev-2", testNow, 2, 3, 4),
	}
	got := ReduceIndividual(records, testNow)
	if got.AverageScore != 3.8 {
		t.Errorf("AverageScore = %v, want 3.8", got.AverageScore)
	}
}

// A record with no items contributes an average of zero rather than
// poisoning the reduction with a division by zero.
func TestReduceIndividualEmptyItems(t *testing.T) {
	records := []models.EvaluationRecord{
		rec("ev-1", testNow, 4, 4),
		rec("ev-2", testNow),
	}
	got := ReduceIndividual(records, testNow)
	if got.AverageScore != 2.0 {
		t.Errorf("AverageScore = %v, want 2.0", got.AverageScore)
	}
	if got.TotalScore != 8 {
		t.Errorf("TotalScore = %v, want 8", got.TotalScore)
	}
}

func TestReduceIndividualThisMonthBoundaries(t *testing.T) {
	records := []models.EvaluationRecord{
		rec("ev-1", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 3),
		rec("ev-2", time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC), 3),
		rec("ev-3", time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC), 3),
		rec("ev-4", time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC), 3),
	}
	got := ReduceIndividual(records, testNow)
	if got.ThisMonth != 2 {
		t.Errorf("ThisMonth = %d, want 2 (same month AND year)", got.ThisMonth)
	}
}
