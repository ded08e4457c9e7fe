// Package quality implements the data processor: it applies type coercion
// and deduplication to a data workbook guided by a prior schema analysis,
// and computes the data-quality metrics before and after improvement.
package quality

import (
	"fmt"
	"log/slog"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// Detected semantic column types shared with the schema analyser.
const (
	TypeText     = "Text"
	TypeNumeric  = "Numeric"
	TypeDateTime = "DateTime"
	TypeBoolean  = "Boolean"
	TypeEmail    = "Email"
	TypePhone    = "Phone"
)

// ColumnSpec is the processor's view of one analysed column.
type ColumnSpec struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Report is the outcome of one processing run. Missing required columns are
// issues, not failures; processing always completes over the available
// columns.
type Report struct {
	FileName          string   `json:"file_name"`
	RowsAnalyzed      int      `json:"rows_analyzed"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	NullsFilled       int      `json:"nulls_filled"`
	Issues            []string `json:"issues"`
	Baseline          Metrics  `json:"baseline_metrics"`
	Metrics           Metrics  `json:"metrics"`
}

// System defines the public contract for data processing.
type System interface {
	Process(sheet *spreadsheet.Sheet, fileName string, schema []ColumnSpec) *Report
}

type processor struct {
	logger *slog.Logger
}

// New creates a data processor implementing the System interface.
func New(logger *slog.Logger) System {
	return &processor{
		logger: logger.With("system", "quality"),
	}
}

// Process runs the fixed improvement pipeline: required-column validation,
// type coercion, baseline metrics, deduplication and null filling, final
// metrics. Empty tables yield all-zero metrics without raising.
func (p *processor) Process(sheet *spreadsheet.Sheet, fileName string, schema []ColumnSpec) *Report {
	report := &Report{FileName: fileName}

	table := tableFromSheet(sheet)
	report.RowsAnalyzed = table.RowCount()

	if table.Empty() {
		p.logger.Info("data table empty, metrics zeroed", "file", fileName)
		return report
	}

	for _, col := range schema {
		if col.Required && table.ColumnIndex(col.Name) < 0 {
			report.Issues = append(report.Issues,
				fmt.Sprintf("required column %q not present in data", col.Name))
		}
	}

	for _, col := range schema {
		if idx := table.ColumnIndex(col.Name); idx >= 0 {
			coerceColumn(table.Rows, idx, col.Type)
		}
	}

	report.Baseline = computeMetrics(table)

	report.DuplicatesRemoved = table.Deduplicate()
	report.NullsFilled = fillRequiredNulls(table, schema)

	report.Metrics = computeMetrics(table)

	p.logger.Info(
		"data processed",
		"file", fileName,
		"rows", report.RowsAnalyzed,
		"duplicates_removed", report.DuplicatesRemoved,
		"nulls_filled", report.NullsFilled,
		"overall", report.Metrics.Overall,
	)

	return report
}

// fillRequiredNulls fills nulls in required columns: numeric nulls with 0,
// all other types with the empty string. Returns the number of cells filled.
func fillRequiredNulls(table *Table, schema []ColumnSpec) int {
	filled := 0

	for _, col := range schema {
		if !col.Required {
			continue
		}
		idx := table.ColumnIndex(col.Name)
		if idx < 0 {
			continue
		}

		fill := spreadsheet.Cell{Value: ""}
		if col.Type == TypeNumeric {
			fill = spreadsheet.Cell{Value: "0"}
		}

		for _, row := range table.Rows {
			if idx < len(row) && row[idx].Null {
				row[idx] = fill
				filled++
			}
		}
	}

	return filled
}
