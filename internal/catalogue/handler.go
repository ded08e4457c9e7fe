package catalogue

import (
	"log/slog"
	"net/http"

	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
)

// Handler provides HTTP endpoints for catalogue read queries.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "catalogue"),
	}
}

// Routes returns the route group definition for catalogue endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/catalogue",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/controls", Handler: h.ListControls},
			{Method: "GET", Pattern: "/controls/{id}", Handler: h.GetControl},
			{Method: "GET", Pattern: "/specifications", Handler: h.ListSpecifications},
			{Method: "GET", Pattern: "/specifications/{id}/evidence", Handler: h.GetEvidence},
			{Method: "GET", Pattern: "/evidence/unlinked", Handler: h.Unlinked},
			{Method: "GET", Pattern: "/maturity", Handler: h.Maturity},
			{Method: "GET", Pattern: "/statistics", Handler: h.Statistics},
			{Method: "GET", Pattern: "/imports", Handler: h.Imports},
		},
	}
}

// ListControls returns all controls in insertion order.
func (h *Handler) ListControls(w http.ResponseWriter, r *http.Request) {
	controls := h.sys.ListControls()
	if controls == nil {
		controls = []Control{}
	}
	handlers.RespondJSON(w, http.StatusOK, controls)
}

// GetControl returns a single control by its DD.N path parameter.
func (h *Handler) GetControl(w http.ResponseWriter, r *http.Request) {
	control := h.sys.GetControl(r.PathValue("id"))
	if control == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNoControl)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, control)
}

// ListSpecifications returns specifications filtered by optional
// priority and domain query parameters.
func (h *Handler) ListSpecifications(w http.ResponseWriter, r *http.Request) {
	specs := h.sys.ListSpecifications(FiltersFromQuery(r.URL.Query()))
	if specs == nil {
		specs = []Specification{}
	}
	handlers.RespondJSON(w, http.StatusOK, specs)
}

// GetEvidence returns the evidence requirements linked to a specification.
func (h *Handler) GetEvidence(w http.ResponseWriter, r *http.Request) {
	evidence := h.sys.GetEvidence(r.PathValue("id"))
	if evidence == nil {
		evidence = []EvidenceRequirement{}
	}
	handlers.RespondJSON(w, http.StatusOK, evidence)
}

// Unlinked returns master-sheet rows whose specification could not be matched.
func (h *Handler) Unlinked(w http.ResponseWriter, r *http.Request) {
	unlinked := h.sys.UnlinkedEvidence()
	if unlinked == nil {
		unlinked = []EvidenceRequirement{}
	}
	handlers.RespondJSON(w, http.StatusOK, unlinked)
}

// Maturity returns the per-domain maturity level questions.
func (h *Handler) Maturity(w http.ResponseWriter, r *http.Request) {
	questions := h.sys.MaturityQuestions()
	if questions == nil {
		questions = []MaturityQuestion{}
	}
	handlers.RespondJSON(w, http.StatusOK, questions)
}

// Statistics returns totals, the priority histogram, and the domain list.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Statistics())
}

// Imports lists prior snapshot files; snapshots are never deleted.
func (h *Handler) Imports(w http.ResponseWriter, r *http.Request) {
	imports, err := h.sys.Imports()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if imports == nil {
		imports = []ImportInfo{}
	}
	handlers.RespondJSON(w, http.StatusOK, imports)
}
