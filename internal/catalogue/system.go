package catalogue

// System defines the public contract for catalogue read queries.
// There is no mutation API: refresh happens by re-running the importer
// and reloading the store.
type System interface {
	Handler() *Handler

	// Load parses the latest snapshot into memory. Called once at startup;
	// a missing snapshot is not an error and yields empty results.
	Load() error
	// Reload discards the in-memory snapshot and loads the latest one.
	Reload() error

	ListControls() []Control
	GetControl(id string) *Control
	ListSpecifications(filters Filters) []Specification
	GetEvidence(specID string) []EvidenceRequirement
	UnlinkedEvidence() []EvidenceRequirement
	MaturityQuestions() []MaturityQuestion
	Calculations() []CalculationRecord
	Statistics() Statistics
	Imports() ([]ImportInfo, error)
}
