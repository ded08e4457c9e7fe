// Package analysis implements the schema analyser for Rasid: given a
// spreadsheet describing a table's columns (one row per column), it
// classifies each column's semantic type and role, computes completeness and
// uniqueness statistics over the row's sample values, and maps detected
// attributes to NDMO standard identifiers.
package analysis

import "github.com/rasidhq/rasid/internal/quality"

// ColumnAnalysis is the per-column classification result. Completeness and
// uniqueness are percentages in [0,100]; Score is a fraction in [0,1].
type ColumnAnalysis struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	IsPrimaryKey bool     `json:"is_primary_key"`
	IsForeignKey bool     `json:"is_foreign_key"`
	IsAuditField bool     `json:"is_audit_field"`
	IsRequired   bool     `json:"is_required"`
	TotalCount   int      `json:"total_count"`
	NonNullCount int      `json:"non_null_count"`
	NullCount    int      `json:"null_count"`
	UniqueCount  int      `json:"unique_count"`
	Completeness float64  `json:"completeness"`
	Uniqueness   float64  `json:"uniqueness"`
	Score        float64  `json:"score"`
	Standards    []string `json:"standards"`
}

// Issue flags a schema-level compliance problem.
type Issue struct {
	Severity    string `json:"severity"`
	Standard    string `json:"standard"`
	Description string `json:"description"`
}

// Recommendation suggests a remediation for an emitted issue.
type Recommendation struct {
	Priority string `json:"priority"`
	Standard string `json:"standard"`
	Action   string `json:"action"`
}

// SchemaAnalysis is the full analyser result for one workbook.
type SchemaAnalysis struct {
	ID              string             `json:"id"`
	Timestamp       string             `json:"timestamp"`
	FileName        string             `json:"file_name"`
	TotalFields     int                `json:"total_fields"`
	TotalColumns    int                `json:"total_columns"`
	Columns         []string           `json:"columns"`
	Fields          []string           `json:"fields"`
	HasPrimaryKey   bool               `json:"has_primary_key"`
	HasForeignKeys  bool               `json:"has_foreign_keys"`
	HasAuditTrail   bool               `json:"has_audit_trail"`
	DataTypes       map[string]int     `json:"data_types"`
	ColumnAnalysis  []ColumnAnalysis   `json:"column_analysis"`
	NDMOCompliance  map[string]float64 `json:"ndmo_compliance"`
	Issues          []Issue            `json:"issues"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// ColumnSpecs projects the analysis into the data processor's column view.
func (a *SchemaAnalysis) ColumnSpecs() []quality.ColumnSpec {
	specs := make([]quality.ColumnSpec, len(a.ColumnAnalysis))
	for i, col := range a.ColumnAnalysis {
		specs[i] = quality.ColumnSpec{
			Name:     col.Name,
			Type:     col.Type,
			Required: col.IsRequired,
		}
	}
	return specs
}
