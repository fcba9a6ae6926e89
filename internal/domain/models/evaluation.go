// internal/domain/models/evaluation.go
package models

import "time"

// EvaluationItem is a single scored criterion inside an evaluation visit.
type EvaluationItem struct {
	Score float64 `json:"score"`
}

// EvaluationRecord is one completed (or in-progress) evaluation visit as the
// evaluation API returns it for the "my evaluations" path.
//
// Items may be empty while an evaluation is incomplete; reducers must treat
// such records as contributing an average of 0 rather than dividing by zero.
type EvaluationRecord struct {
	ID        string           `json:"id"`
	VisitDate time.Time        `json:"visit_date"`
	Items     []EvaluationItem `json:"items"`
}

// ItemTotal returns the sum of the record's item scores.
func (r EvaluationRecord) ItemTotal() float64 {
	var total float64
	for _, it := range r.Items {
		total += it.Score
	}
	return total
}

// Average returns the per-record average: item total divided by item count,
// or 0 for a record with no items.
func (r EvaluationRecord) Average() float64 {
	if len(r.Items) == 0 {
		return 0
	}
	return r.ItemTotal() / float64(len(r.Items))
}
