// Package scoring turns a schema analysis and data-quality metrics into a
// weighted NDMO compliance result. The standards catalogue below is the sole
// source of truth for weights and criticality; it is never loaded from user
// data.
package scoring

// Standard categories.
const (
	CategoryGovernance = "Data Governance"
	CategoryQuality    = "Data Quality"
	CategorySecurity   = "Data Security"
	CategoryRules      = "Business Rules"
	CategoryOperations = "Operations"
)

// Standard identifiers referenced elsewhere in the service.
const (
	StdPrimaryKey   = "DG001"
	StdCompleteness = "DQ001"
	StdAccuracy     = "DQ002"
	StdConsistency  = "DQ003"
	StdUniqueness   = "DQ004"
	StdValidity     = "DQ005"
	StdTimeliness   = "DQ006"
	StdAuditTrail   = "DS004"
	StdForeignKeys  = "BR002"
)

// Standard is one weighted criterion of the NDMO catalogue.
type Standard struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Critical bool    `json:"critical"`
}

// Standards is the fixed five-category, eighteen-entry NDMO catalogue.
// Weights sum to 1.0 across all entries.
var Standards = []Standard{
	{ID: "DG001", Name: "Primary Key Definition", Category: CategoryGovernance, Weight: 0.08, Critical: true},
	{ID: "DG002", Name: "Data Ownership", Category: CategoryGovernance, Weight: 0.05},
	{ID: "DG003", Name: "Metadata Management", Category: CategoryGovernance, Weight: 0.05},
	{ID: "DG004", Name: "Data Stewardship", Category: CategoryGovernance, Weight: 0.04},

	{ID: "DQ001", Name: "Data Completeness", Category: CategoryQuality, Weight: 0.08, Critical: true},
	{ID: "DQ002", Name: "Data Accuracy", Category: CategoryQuality, Weight: 0.07},
	{ID: "DQ003", Name: "Data Consistency", Category: CategoryQuality, Weight: 0.06},
	{ID: "DQ004", Name: "Data Uniqueness", Category: CategoryQuality, Weight: 0.07},
	{ID: "DQ005", Name: "Data Validity", Category: CategoryQuality, Weight: 0.06},
	{ID: "DQ006", Name: "Data Timeliness", Category: CategoryQuality, Weight: 0.04},

	{ID: "DS001", Name: "Access Control", Category: CategorySecurity, Weight: 0.07, Critical: true},
	{ID: "DS002", Name: "Encryption at Rest", Category: CategorySecurity, Weight: 0.05},
	{ID: "DS003", Name: "Data Masking", Category: CategorySecurity, Weight: 0.04},
	{ID: "DS004", Name: "Audit Trail", Category: CategorySecurity, Weight: 0.08, Critical: true},

	{ID: "BR001", Name: "Referential Integrity", Category: CategoryRules, Weight: 0.05},
	{ID: "BR002", Name: "Foreign Key Constraints", Category: CategoryRules, Weight: 0.05},

	{ID: "OP001", Name: "Backup and Recovery", Category: CategoryOperations, Weight: 0.03},
	{ID: "OP002", Name: "Data Retention", Category: CategoryOperations, Weight: 0.03},
}

// StandardByID resolves a catalogue entry by identifier.
func StandardByID(id string) (Standard, bool) {
	for _, s := range Standards {
		if s.ID == id {
			return s, true
		}
	}
	return Standard{}, false
}
