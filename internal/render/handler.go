package render

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rasidhq/rasid/internal/forms"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
)

// RenderedResponse reports the storage key of a rendered document.
type RenderedResponse struct {
	File string `json:"file"`
}

// ReportRequest is the JSON body for compliance-report rendering.
type ReportRequest struct {
	Result     *scoring.Result `json:"result"`
	SourceFile string          `json:"source_file,omitempty"`
}

// Handler provides HTTP endpoints for template and report rendering.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given renderer.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "render"),
	}
}

// Routes returns the route group definition for render endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/render",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/templates/{kind}", Handler: h.Template},
			{Method: "POST", Pattern: "/reports/compliance", Handler: h.ComplianceReport},
		},
	}
}

// Template renders a blank template PDF for the given form kind.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	kind, err := forms.ParseKind(r.PathValue("kind"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, err := h.sys.RenderTemplate(kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, RenderedResponse{File: file})
}

// ComplianceReport renders a formatted report from a scoring result.
func (h *Handler) ComplianceReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Result == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrRenderFailed)
		return
	}

	file, err := h.sys.RenderComplianceReport(req.Result, req.SourceFile)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, RenderedResponse{File: file})
}
