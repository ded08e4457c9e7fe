// Package forms persists filled-form submissions as append-only JSON
// records under the workspace and loads the latest submission for a given
// form kind and key tuple. The store is opaque to form content: callers
// supply the field mapping, the store adds the kind and creation timestamp.
package forms

// Kind enumerates the supported form kinds.
type Kind string

const (
	KindEvidence           Kind = "evidence"
	KindComplianceReport   Kind = "compliance-report"
	KindAuditChecklist     Kind = "audit-checklist"
	KindDataShareAgreement Kind = "data-share-agreement"
	KindDataSharingReport  Kind = "data-sharing-report"
	KindGapAnalysis        Kind = "gap-analysis"
	KindRiskAssessment     Kind = "risk-assessment"
	KindUseCaseBrief       Kind = "use-case-brief"
)

// Kinds lists every supported form kind.
var Kinds = []Kind{
	KindEvidence,
	KindComplianceReport,
	KindAuditChecklist,
	KindDataShareAgreement,
	KindDataSharingReport,
	KindGapAnalysis,
	KindRiskAssessment,
	KindUseCaseBrief,
}

// ParseKind validates a raw form-kind value.
func ParseKind(raw string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == raw {
			return kind, nil
		}
	}
	return "", ErrUnknownKind
}

// Record is one filled-form submission as persisted on disk.
type Record struct {
	FormType    string         `json:"form_type"`
	CreatedDate string         `json:"created_date"`
	Data        map[string]any `json:"data"`
	ImagePath   string         `json:"image_path,omitempty"`
}

// Submission reports a completed submit: the persisted record and the
// storage key it was written under.
type Submission struct {
	Kind   Kind     `json:"kind"`
	Key    []string `json:"key"`
	File   string   `json:"file"`
	Record Record   `json:"record"`
}
