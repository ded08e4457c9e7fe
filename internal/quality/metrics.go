package quality

import "github.com/rasidhq/rasid/pkg/formatting"

// Metric weights for the overall score.
const (
	weightCompleteness = 0.25
	weightAccuracy     = 0.20
	weightConsistency  = 0.15
	weightUniqueness   = 0.20
	weightValidity     = 0.20
)

// placeholderScore is the fixed value reported for metrics the processor
// does not compute from the data. The constant is deliberately stable so
// scores remain comparable across historical reports; estimated metrics are
// surfaced by name instead of being silently strengthened.
const placeholderScore = 0.8

// Metrics are the five data-quality measures as fractions in [0,1] plus
// their weighted overall score. Estimated names the metrics carrying the
// fixed placeholder rather than a computed value.
type Metrics struct {
	Completeness float64  `json:"completeness"`
	Accuracy     float64  `json:"accuracy"`
	Consistency  float64  `json:"consistency"`
	Uniqueness   float64  `json:"uniqueness"`
	Validity     float64  `json:"validity"`
	Overall      float64  `json:"overall_score"`
	Estimated    []string `json:"estimated,omitempty"`
}

// computeMetrics measures a table. Empty tables yield all zeros without
// raising; otherwise accuracy, consistency, and validity carry the
// placeholder and are listed as estimated.
func computeMetrics(t *Table) Metrics {
	if t.Empty() {
		return Metrics{}
	}

	m := Metrics{
		Completeness: formatting.Ratio(t.NonNullCells(), t.TotalCells()),
		Accuracy:     placeholderScore,
		Consistency:  placeholderScore,
		Uniqueness:   formatting.Ratio(t.UniqueRows(), t.RowCount()),
		Validity:     placeholderScore,
		Estimated:    []string{"accuracy", "consistency", "validity"},
	}

	m.Overall = weightCompleteness*m.Completeness +
		weightAccuracy*m.Accuracy +
		weightConsistency*m.Consistency +
		weightUniqueness*m.Uniqueness +
		weightValidity*m.Validity

	return m
}
