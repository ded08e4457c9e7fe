package scoring

import (
	"log/slog"

	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/pkg/formatting"
)

// Compliance verdicts.
const (
	StatusCompliant          = "Compliant"
	StatusPartiallyCompliant = "PartiallyCompliant"
	StatusNonCompliant       = "NonCompliant"
)

// Verdict thresholds. Any critical standard below criticalThreshold forces
// NonCompliant regardless of the overall score.
const (
	compliantThreshold = 0.9
	partialThreshold   = 0.7
	criticalThreshold  = 0.7
)

// Schema scores assigned when a structural standard is not met.
const (
	missingPrimaryKeyScore = 0.3
	missingAuditTrailScore = 0.2
)

// defaultScore is reported for catalogue standards the assessment does not
// reach; such standards carry Assessed=false and are excluded from the
// weighted aggregation.
const defaultScore = 0.5

// Inputs carries the assessed facts into the scorer. Metrics is nil when the
// user requested a score without processing a data workbook.
type Inputs struct {
	TotalColumns   int
	HasPrimaryKey  bool
	HasForeignKeys bool
	HasAuditTrail  bool
	Metrics        *quality.Metrics
}

// StandardScore is one standard's assessed outcome.
type StandardScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Critical bool    `json:"critical"`
	Assessed bool    `json:"assessed"`
}

// Recommendation is emitted for every assessed standard scoring below the
// critical threshold.
type Recommendation struct {
	Standard string `json:"standard"`
	Name     string `json:"name"`
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// Result is the scorer's compliance verdict.
type Result struct {
	OverallScore    float64                  `json:"overall_score"`
	CategoryScores  map[string]float64       `json:"category_scores"`
	StandardScores  map[string]StandardScore `json:"standard_scores"`
	Status          string                   `json:"status"`
	Recommendations []Recommendation         `json:"recommendations"`
}

// System defines the public contract for NDMO scoring.
type System interface {
	Score(in Inputs) *Result
}

type scorer struct {
	logger *slog.Logger
}

// New creates a scorer implementing the System interface.
func New(logger *slog.Logger) System {
	return &scorer{
		logger: logger.With("system", "scoring"),
	}
}

// Score aggregates per-standard scores into overall and per-category scores
// with a verdict. An empty schema assesses nothing and degenerates to
// overall 0 with status NonCompliant and an empty category map.
func (s *scorer) Score(in Inputs) *Result {
	assessed := assess(in)

	result := &Result{
		CategoryScores: map[string]float64{},
		StandardScores: map[string]StandardScore{},
	}

	var weightSum, weighted float64
	categoryWeight := map[string]float64{}
	categoryWeighted := map[string]float64{}
	criticalBreach := false

	for _, std := range Standards {
		score, ok := assessed[std.ID]

		record := StandardScore{
			Name:     std.Name,
			Score:    defaultScore,
			Weight:   std.Weight,
			Critical: std.Critical,
		}

		if ok {
			record.Score = formatting.ClampFraction(score)
			record.Assessed = true

			weighted += record.Score * std.Weight
			weightSum += std.Weight
			categoryWeighted[std.Category] += record.Score * std.Weight
			categoryWeight[std.Category] += std.Weight

			if std.Critical && record.Score < criticalThreshold {
				criticalBreach = true
			}

			if record.Score < criticalThreshold {
				result.Recommendations = append(result.Recommendations, recommend(std))
			}
		}

		result.StandardScores[std.ID] = record
	}

	if weightSum == 0 {
		result.Status = StatusNonCompliant
		s.logger.Warn("degenerate scoring input, nothing assessed")
		return result
	}

	result.OverallScore = weighted / weightSum
	for category, w := range categoryWeight {
		result.CategoryScores[category] = categoryWeighted[category] / w
	}

	result.Status = verdict(result.OverallScore, criticalBreach)

	s.logger.Info(
		"compliance scored",
		"overall", result.OverallScore,
		"status", result.Status,
		"recommendations", len(result.Recommendations),
	)

	return result
}

// assess derives per-standard scores from the inputs. Structural standards
// come from the schema analysis; the DQ standards mirror the quality
// metrics when a data workbook was processed.
func assess(in Inputs) map[string]float64 {
	if in.TotalColumns == 0 {
		return nil
	}

	scores := map[string]float64{}

	if in.HasPrimaryKey {
		scores[StdPrimaryKey] = 1.0
	} else {
		scores[StdPrimaryKey] = missingPrimaryKeyScore
	}

	if in.HasAuditTrail {
		scores[StdAuditTrail] = 1.0
	} else {
		scores[StdAuditTrail] = missingAuditTrailScore
	}

	// Foreign keys are optional structure: their presence is credited,
	// their absence is not penalised.
	if in.HasForeignKeys {
		scores[StdForeignKeys] = 1.0
	}

	if in.Metrics != nil {
		scores[StdCompleteness] = in.Metrics.Completeness
		scores[StdAccuracy] = in.Metrics.Accuracy
		scores[StdConsistency] = in.Metrics.Consistency
		scores[StdUniqueness] = in.Metrics.Uniqueness
		scores[StdValidity] = in.Metrics.Validity
	}

	return scores
}

func verdict(overall float64, criticalBreach bool) string {
	switch {
	case criticalBreach:
		return StatusNonCompliant
	case overall >= compliantThreshold:
		return StatusCompliant
	case overall >= partialThreshold:
		return StatusPartiallyCompliant
	default:
		return StatusNonCompliant
	}
}

func recommend(std Standard) Recommendation {
	priority := "Medium"
	if std.Critical {
		priority = "High"
	}

	return Recommendation{
		Standard: std.ID,
		Name:     std.Name,
		Priority: priority,
		Action:   "Improve " + std.Name + " to meet the " + std.Category + " requirements",
	}
}
