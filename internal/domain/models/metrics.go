// internal/domain/models/metrics.go
package models

import "fmt"

// IndividualMetrics is the reduced dashboard shape for everyone who is not a
// sales director. It is recomputed wholesale on each load; nothing here is
// persisted.
type IndividualMetrics struct {
	TotalEvaluations int     `json:"total_evaluations"`
	AverageScore     float64 `json:"average_score"` // rounded to one decimal
	TotalScore       float64 `json:"total_score"`
	ThisMonth        int     `json:"this_month"`
}

// AverageScoreLabel renders the average with exactly one decimal place,
// matching how the dashboard displays it.
func (m IndividualMetrics) AverageScoreLabel() string {
	return fmt.Sprintf("%.1f", m.AverageScore)
}

// DirectorateMetrics is the organization-wide roll-up the evaluation API
// pre-aggregates for sales directors. This client passes it through; missing
// numeric fields simply decode to their zero values and display as 0.
type DirectorateMetrics struct {
	TotalRegions         int     `json:"total_regions"`
	TotalTeamMembers     int     `json:"total_team_members"`
	AveragePerformance   float64 `json:"average_performance"` // percentage
	TotalEvaluations     int     `json:"total_evaluations"`
	EvaluationsCompleted int     `json:"evaluations_completed"`
	AverageScore         float64 `json:"average_score"`
}

// AverageScoreLabel renders the roll-up average with one decimal place.
func (m DirectorateMetrics) AverageScoreLabel() string {
	return fmt.Sprintf("%.1f", m.AverageScore)
}
