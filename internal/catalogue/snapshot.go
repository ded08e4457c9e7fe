package catalogue

import (
	"regexp"
	"time"
)

// TimestampLayout is the filename timestamp format shared by snapshots,
// form records, and rendered PDFs.
const TimestampLayout = "20060102_150405"

// SnapshotDir is the workspace directory holding catalogue snapshots.
const SnapshotDir = "imported_data"

// snapshotFilePattern matches timestamped snapshot filenames. Lexicographic
// order on matching names equals chronological order.
var snapshotFilePattern = regexp.MustCompile(`^\d{8}_\d{6}\.json$`)

// Snapshot is the immutable output of one importer run and the sole input
// of the catalogue store.
type Snapshot struct {
	ImportDate        string                           `json:"import_date"`
	SourceFile        string                           `json:"source_file"`
	Controls          []Control                        `json:"controls"`
	Specifications    []Specification                  `json:"specifications"`
	Evidence          map[string][]EvidenceRequirement `json:"evidence"`
	UnlinkedEvidence  []EvidenceRequirement            `json:"unlinked_evidence"`
	Calculations      []CalculationRecord              `json:"calculations"`
	MaturityQuestions []MaturityQuestion               `json:"maturity_questions"`
	Statistics        Statistics                       `json:"statistics"`
	Warnings          []string                         `json:"warnings"`
}

// Statistics summarises a snapshot. A store with no snapshot serves the
// zero value rather than an error.
type Statistics struct {
	TotalControls       int              `json:"total_controls"`
	TotalSpecifications int              `json:"total_specifications"`
	TotalEvidence       int              `json:"total_evidence"`
	PriorityCounts      map[Priority]int `json:"priority_counts"`
	Domains             []string         `json:"domains"`
}

// ImportInfo describes one snapshot file in the import history.
type ImportInfo struct {
	File       string `json:"file"`
	ImportDate string `json:"import_date"`
}

// SnapshotKey builds the storage key for a snapshot imported at ts.
func SnapshotKey(ts time.Time) string {
	return SnapshotDir + "/" + ts.Format(TimestampLayout) + ".json"
}

// IsSnapshotFile reports whether a filename matches the timestamped
// snapshot pattern.
func IsSnapshotFile(name string) bool {
	return snapshotFilePattern.MatchString(name)
}

// Summarize recomputes the snapshot's statistics from its contents.
func (s *Snapshot) Summarize() Statistics {
	stats := Statistics{
		TotalControls:       len(s.Controls),
		TotalSpecifications: len(s.Specifications),
		PriorityCounts:      map[Priority]int{P1: 0, P2: 0, P3: 0},
	}

	for _, spec := range s.Specifications {
		stats.PriorityCounts[spec.Priority]++
	}

	for _, reqs := range s.Evidence {
		stats.TotalEvidence += len(reqs)
	}

	seen := map[string]bool{}
	for _, spec := range s.Specifications {
		if !seen[spec.DomainCode] {
			seen[spec.DomainCode] = true
			stats.Domains = append(stats.Domains, spec.DomainCode)
		}
	}

	return stats
}
