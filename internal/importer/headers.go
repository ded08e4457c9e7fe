package importer

import (
	"strings"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// maxHeaderProbeRows bounds the header probe: the header is the first of the
// leading rows whose non-null cell count exceeds half the sheet width.
const maxHeaderProbeRows = 5

// LogicalColumn names a column role independent of the vendor's header text.
type LogicalColumn string

// Logical columns of the specifications sheet.
const (
	ColDomain          LogicalColumn = "domain"
	ColSpecID          LogicalColumn = "spec_id"
	ColSpecification   LogicalColumn = "specification"
	ColDescription     LogicalColumn = "description"
	ColPriority        LogicalColumn = "priority"
	ColComplianceLevel LogicalColumn = "compliance_level"
)

// Logical columns of the master (evidence + maturity) sheet.
const (
	ColNDMOSpec     LogicalColumn = "ndmo_spec"
	ColEvidence     LogicalColumn = "evidence"
	ColEvidenceType LogicalColumn = "evidence_type"
	ColDocument     LogicalColumn = "document"
	ColAcceptance   LogicalColumn = "acceptance"
	ColRequired     LogicalColumn = "required"
	ColMaturity     LogicalColumn = "maturity"
)

// Logical columns of the priority/calculation sheet.
const (
	ColNDIID LogicalColumn = "ndi_id"
)

// aliasEntry pairs a logical column with its accepted header synonyms.
// Order matters twice over: more specific logical columns resolve first so
// that e.g. "Specification ID" is claimed by spec_id before the
// specification text column sees it, and within one entry earlier aliases
// win.
type aliasEntry struct {
	Column  LogicalColumn
	Aliases []string
}

var specSheetAliases = []aliasEntry{
	{ColSpecID, []string{"specification id", "spec id", "ndmo id", "control reference", "reference no", "reference", "id"}},
	{ColComplianceLevel, []string{"compliance level", "compliance"}},
	{ColDomain, []string{"data domain", "domain"}},
	{ColPriority, []string{"priority", "phase"}},
	{ColSpecification, []string{"specification statement", "specification", "requirement", "statement"}},
	{ColDescription, []string{"description", "details"}},
}

var masterSheetAliases = []aliasEntry{
	{ColNDMOSpec, []string{"ndmo specifications", "ndmo specification", "specification"}},
	{ColEvidenceType, []string{"evidence type"}},
	{ColEvidence, []string{"evidence required", "evidence", "deliverable"}},
	{ColDocument, []string{"document name", "document"}},
	{ColAcceptance, []string{"acceptance criteria", "acceptance"}},
	{ColRequired, []string{"required", "mandatory"}},
	{ColMaturity, []string{"maturity level", "maturity"}},
	{ColPriority, []string{"priority"}},
	{ColDomain, []string{"data domain", "domain"}},
}

var prioritySheetAliases = []aliasEntry{
	{ColNDIID, []string{"ndi id", "ndi", "id"}},
}

// maturityLevels maps the L0–L5 logical level names to accepted headers.
var maturityLevels = []aliasEntry{
	{"L0", []string{"l0", "level 0"}},
	{"L1", []string{"l1", "level 1"}},
	{"L2", []string{"l2", "level 2"}},
	{"L3", []string{"l3", "level 3"}},
	{"L4", []string{"l4", "level 4"}},
	{"L5", []string{"l5", "level 5"}},
}

// HeaderMap resolves logical columns to sheet column indices.
// Absent columns are simply missing from the map.
type HeaderMap map[LogicalColumn]int

// Has reports whether a logical column was resolved.
func (m HeaderMap) Has(col LogicalColumn) bool {
	_, ok := m[col]
	return ok
}

// Cell returns the trimmed value of the logical column within a row,
// or "" when the column is absent or the cell is null.
func (m HeaderMap) Cell(row []spreadsheet.Cell, col LogicalColumn) string {
	idx, ok := m[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx].Value
}

// ResolveHeaders matches sheet headers against the alias table.
// Matching is a case-insensitive substring test; each sheet column is
// claimed at most once, in alias-table order.
func ResolveHeaders(headers []string, aliases []aliasEntry) HeaderMap {
	resolved := HeaderMap{}
	claimed := make([]bool, len(headers))

	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, entry := range aliases {
		for _, alias := range entry.Aliases {
			idx := matchHeader(lowered, claimed, alias)
			if idx >= 0 {
				resolved[entry.Column] = idx
				claimed[idx] = true
				break
			}
		}
	}

	return resolved
}

func matchHeader(lowered []string, claimed []bool, alias string) int {
	for i, h := range lowered {
		if claimed[i] || h == "" {
			continue
		}
		if strings.Contains(h, alias) {
			return i
		}
	}
	return -1
}

// probeHeader scans the sheet's first rows and returns the index of the
// first row whose non-null cell count exceeds half the sheet width.
// Returns -1 when no row qualifies.
func probeHeader(sheet *spreadsheet.Sheet) int {
	limit := min(maxHeaderProbeRows, len(sheet.Rows))
	width := sheet.Width()

	for i := 0; i < limit; i++ {
		if spreadsheet.NonNull(sheet.Rows[i])*2 > width {
			return i
		}
	}
	return -1
}
