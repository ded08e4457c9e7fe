package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/formatting"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// Per-column score maxima. The column score is the earned sum divided by the
// sum of reachable maxima, so criteria that do not apply (no sample values)
// do not penalise the column.
const (
	maxPrimaryKey   = 0.15
	maxCompleteness = 0.15
	maxUniqueness   = 0.10
	maxAudit        = 0.10
	maxTyped        = 0.10
)

const timestampLayout = "2006-01-02T15:04:05"

// System defines the public contract for schema analysis.
type System interface {
	Handler(processor quality.System, scorer scoring.System, maxUploadSize int64) *Handler

	// Analyse reads a workbook stream and produces a SchemaAnalysis.
	Analyse(r io.Reader, fileName string) (*SchemaAnalysis, error)
	// AnalyseSheet analyses an already-opened sheet.
	AnalyseSheet(sheet *spreadsheet.Sheet, fileName string) *SchemaAnalysis

	Sessions() *Sessions
}

type analyser struct {
	logger   *slog.Logger
	sessions *Sessions
	now      func() time.Time
}

// New creates a schema analyser implementing the System interface.
func New(logger *slog.Logger) System {
	return &analyser{
		logger:   logger.With("system", "analysis"),
		sessions: NewSessions(),
		now:      time.Now,
	}
}

func (a *analyser) Handler(processor quality.System, scorer scoring.System, maxUploadSize int64) *Handler {
	return NewHandler(a, processor, scorer, a.logger, maxUploadSize)
}

func (a *analyser) Sessions() *Sessions {
	return a.sessions
}

func (a *analyser) Analyse(r io.Reader, fileName string) (*SchemaAnalysis, error) {
	wb, err := spreadsheet.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnreadable, err)
	}
	defer wb.Close()

	sheet, err := wb.First()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnreadable, err)
	}

	return a.AnalyseSheet(sheet, fileName), nil
}

// AnalyseSheet treats each data row of the sheet as describing one column of
// the target table. Cells not claimed by the name/type/required headers are
// sample values and feed the column statistics.
func (a *analyser) AnalyseSheet(sheet *spreadsheet.Sheet, fileName string) *SchemaAnalysis {
	result := &SchemaAnalysis{
		ID:             uuid.NewString(),
		Timestamp:      a.now().Format(timestampLayout),
		FileName:       fileName,
		DataTypes:      map[string]int{},
		NDMOCompliance: map[string]float64{},
	}

	if sheet == nil || sheet.Empty() {
		a.finalize(result)
		return result
	}

	headers := spreadsheet.Values(sheet.Rows[0])
	nameIdx := matchHeader(headers, nameHeaders)
	typeIdx := matchHeaderContains(headers, typeHeaders)
	requiredIdx := matchHeaderContains(headers, requiredHeaders)

	meta := map[int]bool{}
	for _, idx := range []int{nameIdx, typeIdx, requiredIdx} {
		if idx >= 0 {
			meta[idx] = true
		}
	}

	for i, row := range sheet.Rows[1:] {
		if spreadsheet.NonNull(row) == 0 {
			continue
		}

		col := a.analyseColumn(row, i, nameIdx, typeIdx, requiredIdx, meta)
		result.ColumnAnalysis = append(result.ColumnAnalysis, col)
		result.Columns = append(result.Columns, col.Name)
		result.DataTypes[col.Type]++
		result.NDMOCompliance[col.Name] = col.Score

		result.HasPrimaryKey = result.HasPrimaryKey || col.IsPrimaryKey
		result.HasForeignKeys = result.HasForeignKeys || col.IsForeignKey
		result.HasAuditTrail = result.HasAuditTrail || col.IsAuditField
	}

	a.finalize(result)

	a.logger.Info(
		"schema analysed",
		"id", result.ID,
		"file", fileName,
		"columns", result.TotalColumns,
		"primary_key", result.HasPrimaryKey,
		"audit_trail", result.HasAuditTrail,
	)

	return result
}

func (a *analyser) analyseColumn(
	row []spreadsheet.Cell,
	rowIdx, nameIdx, typeIdx, requiredIdx int,
	meta map[int]bool,
) ColumnAnalysis {
	col := ColumnAnalysis{
		Name: columnName(row, rowIdx, nameIdx),
	}

	declared := ""
	if typeIdx >= 0 && typeIdx < len(row) {
		declared = row[typeIdx].Value
	}
	col.Type = detectType(col.Name, declared)

	col.IsPrimaryKey = isPrimaryKey(col.Name)
	col.IsForeignKey = isForeignKey(col.Name)
	col.IsAuditField = isAuditField(col.Name)
	if requiredIdx >= 0 && requiredIdx < len(row) {
		col.IsRequired = isRequiredValue(row[requiredIdx].Value)
	}

	sampleStats(&col, row, meta)
	col.Standards = mapStandards(col)
	col.Score = columnScore(col)

	return col
}

// columnName resolves a column's name: the header-matched name field, then
// the first sheet-column's value, then a positional synthetic name.
func columnName(row []spreadsheet.Cell, rowIdx, nameIdx int) string {
	if nameIdx >= 0 && nameIdx < len(row) && !row[nameIdx].Null {
		return row[nameIdx].Value
	}
	if len(row) > 0 && !row[0].Null {
		return row[0].Value
	}
	return fmt.Sprintf("Field_%d", rowIdx+1)
}

// sampleStats computes counts and percentages over the row's sample cells.
// Division by zero yields 0.
func sampleStats(col *ColumnAnalysis, row []spreadsheet.Cell, meta map[int]bool) {
	unique := map[string]bool{}

	for i, cell := range row {
		if meta[i] {
			continue
		}
		col.TotalCount++
		if cell.Null {
			col.NullCount++
			continue
		}
		col.NonNullCount++
		unique[cell.Value] = true
	}

	col.UniqueCount = len(unique)
	col.Completeness = formatting.Percent(formatting.Ratio(col.NonNullCount, col.TotalCount))
	col.Uniqueness = formatting.Percent(formatting.Ratio(col.UniqueCount, col.TotalCount))
}

// mapStandards attaches the fixed NDMO standard identifiers for each
// detected attribute.
func mapStandards(col ColumnAnalysis) []string {
	var standards []string

	if col.IsPrimaryKey {
		standards = append(standards, scoring.StdPrimaryKey)
	}
	if col.IsForeignKey {
		standards = append(standards, scoring.StdForeignKeys)
	}
	if col.IsAuditField {
		standards = append(standards, scoring.StdAuditTrail)
	}
	switch col.Type {
	case quality.TypeEmail, quality.TypePhone:
		standards = append(standards, scoring.StdValidity)
	case quality.TypeDateTime:
		standards = append(standards, scoring.StdTimeliness)
	}
	if col.IsRequired {
		standards = append(standards, scoring.StdCompleteness)
	}

	return standards
}

// columnScore is the weighted per-column NDMO score: earned points over the
// reachable maxima. The statistics criteria are reachable only when the
// column carries sample values.
func columnScore(col ColumnAnalysis) float64 {
	earned := 0.0
	reachable := maxPrimaryKey + maxAudit + maxTyped

	if col.IsPrimaryKey {
		earned += maxPrimaryKey
	}
	if col.IsAuditField {
		earned += maxAudit
	}
	if col.Type != quality.TypeText {
		earned += maxTyped
	}

	if col.TotalCount > 0 {
		reachable += maxCompleteness + maxUniqueness
		earned += maxCompleteness * (col.Completeness / 100)
		earned += maxUniqueness * (col.Uniqueness / 100)
	}

	return formatting.ClampFraction(earned / reachable)
}

// finalize fills the schema-level derived fields and emits the two critical
// checks: missing primary key and missing audit trail.
func (a *analyser) finalize(result *SchemaAnalysis) {
	result.TotalColumns = len(result.ColumnAnalysis)
	result.TotalFields = result.TotalColumns
	result.Fields = result.Columns

	if !result.HasPrimaryKey {
		result.Issues = append(result.Issues, Issue{
			Severity:    "High",
			Standard:    scoring.StdPrimaryKey,
			Description: "No primary key column detected in the schema",
		})
		result.Recommendations = append(result.Recommendations, Recommendation{
			Priority: "High",
			Standard: scoring.StdPrimaryKey,
			Action:   "Define a unique primary key column to identify each record",
		})
	}

	if !result.HasAuditTrail {
		result.Issues = append(result.Issues, Issue{
			Severity:    "High",
			Standard:    scoring.StdAuditTrail,
			Description: "No audit trail columns detected in the schema",
		})
		result.Recommendations = append(result.Recommendations, Recommendation{
			Priority: "High",
			Standard: scoring.StdAuditTrail,
			Action:   "Add created/updated timestamp and user columns to track changes",
		})
	}
}
