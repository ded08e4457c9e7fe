// Package catalogue implements the compliance-catalogue domain for Rasid.
// It provides the normalised model of domains, controls, specifications, and
// evidence requirements imported from the vendor workbook, plus the read-only
// store that serves all catalogue queries from the latest snapshot.
package catalogue

import (
	"regexp"
	"strings"
)

// Priority is the tier in which a specification must be satisfied
// (Year 1 / Year 2 / Year 3).
type Priority string

// The three priority tiers. Unknown priorities coerce to P1.
const (
	P1 Priority = "P1"
	P2 Priority = "P2"
	P3 Priority = "P3"
)

// SpecIDPattern matches specification identifiers of the form DD.N.M.
var SpecIDPattern = regexp.MustCompile(`^[A-Z]{2}\.\d+\.\d+$`)

// ControlIDPattern matches control identifiers of the form DD.N.
var ControlIDPattern = regexp.MustCompile(`^[A-Z]{2}\.\d+$`)

// NormalizePriority trims and upper-cases a raw priority cell value.
// Values outside {P1, P2, P3} coerce to P1; the second return reports
// whether coercion happened so callers can log it.
func NormalizePriority(raw string) (Priority, bool) {
	switch Priority(strings.ToUpper(strings.TrimSpace(raw))) {
	case P1:
		return P1, false
	case P2:
		return P2, false
	case P3:
		return P3, false
	default:
		return P1, true
	}
}

// Control is a named grouping of related specifications within a domain.
// Controls are synthesised during import and never mutated afterwards.
type Control struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	DomainCode     string          `json:"domain"`
	Description    string          `json:"description"`
	Specifications []Specification `json:"specifications"`
}

// Specification is an atomic, priority-tagged requirement belonging to
// exactly one control. Insertion order within a control is preserved.
type Specification struct {
	SpecID          string   `json:"spec_id"`
	ControlID       string   `json:"control_id"`
	DomainCode      string   `json:"domain"`
	Priority        Priority `json:"priority"`
	Text            string   `json:"specification"`
	Description     string   `json:"description"`
	ComplianceLevel string   `json:"compliance_level"`
}

// EvidenceRequirement describes a document or artefact demonstrating
// satisfaction of a specification. Unlinked requirements carry an empty
// SpecID and preserve the raw reference cell for later reconciliation.
type EvidenceRequirement struct {
	SpecID             string   `json:"spec_id"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	DocumentName       string   `json:"document_name,omitempty"`
	AcceptanceCriteria string   `json:"acceptance_criteria"`
	Required           bool     `json:"required"`
	Priority           Priority `json:"priority"`
	MaturityLevel      string   `json:"maturity_level,omitempty"`
	Reference          string   `json:"reference,omitempty"`
}

// MaturityQuestion maps a domain to its L0–L5 maturity level descriptions.
type MaturityQuestion struct {
	Domain string            `json:"domain"`
	Levels map[string]string `json:"levels"`
}

// CalculationRecord carries a priority-sheet row verbatim, keyed by its
// opaque NDI identifier.
type CalculationRecord struct {
	NDIID  string            `json:"ndi_id"`
	Fields map[string]string `json:"fields"`
}
