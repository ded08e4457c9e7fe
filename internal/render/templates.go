package render

import "github.com/rasidhq/rasid/internal/forms"

// Template describes the printable layout of one form kind: the document
// title and the labelled fields a blank template presents.
type Template struct {
	Title  string
	Fields []string
}

var templates = map[forms.Kind]Template{
	forms.KindEvidence: {
		Title: "Evidence Collection Form",
		Fields: []string{
			"Control ID", "Specification ID", "Evidence Description",
			"Document Name", "Collection Date", "Responsible Party", "Notes",
		},
	},
	forms.KindComplianceReport: {
		Title: "Compliance Report",
		Fields: []string{
			"Organization", "Assessment Period", "Overall Score",
			"Status", "Key Findings", "Remediation Plan",
		},
	},
	forms.KindAuditChecklist: {
		Title: "Audit Checklist",
		Fields: []string{
			"Audit Date", "Auditor", "Domain", "Control ID",
			"Checklist Item", "Result", "Comments",
		},
	},
	forms.KindDataShareAgreement: {
		Title: "Data Share Agreement",
		Fields: []string{
			"Provider Entity", "Consumer Entity", "Dataset", "Purpose",
			"Legal Basis", "Effective Date", "Expiry Date", "Security Controls",
		},
	},
	forms.KindDataSharingReport: {
		Title: "Data Sharing Report",
		Fields: []string{
			"Reporting Period", "Active Agreements", "Datasets Shared",
			"Incidents", "Notes",
		},
	},
	forms.KindGapAnalysis: {
		Title: "Gap Analysis Report",
		Fields: []string{
			"Domain", "Control ID", "Current State", "Target State",
			"Gap Description", "Remediation Action", "Target Date",
		},
	},
	forms.KindRiskAssessment: {
		Title: "Risk Assessment",
		Fields: []string{
			"Risk ID", "Description", "Likelihood", "Impact",
			"Risk Level", "Mitigation", "Owner", "Review Date",
		},
	},
	forms.KindUseCaseBrief: {
		Title: "Data Use Case Brief",
		Fields: []string{
			"Use Case Name", "Business Owner", "Data Sources",
			"Expected Benefit", "Data Classification", "Approval Status",
		},
	},
}

func templateFor(kind forms.Kind) (Template, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return Template{}, forms.ErrUnknownKind
	}
	return tmpl, nil
}
