package forms

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
)

// SubmitRequest is the JSON body of a form submission.
type SubmitRequest struct {
	Key       []string       `json:"key"`
	Data      map[string]any `json:"data"`
	ImagePath string         `json:"image_path,omitempty"`
}

// SubmitResponse reports a persisted submission and its rendered PDF.
type SubmitResponse struct {
	Submission *Submission `json:"submission"`
	PDF        string      `json:"pdf,omitempty"`
}

// Handler provides HTTP endpoints for form submission and retrieval.
type Handler struct {
	sys      System
	renderer Renderer
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given store and renderer.
func NewHandler(sys System, renderer Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		sys:      sys,
		renderer: renderer,
		logger:   logger.With("handler", "forms"),
	}
}

// Routes returns the route group definition for form endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/forms",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{kind}", Handler: h.Submit},
			{Method: "GET", Pattern: "/{kind}", Handler: h.Load},
		},
	}
}

// Submit persists a filled-form record and renders its PDF.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(r.PathValue("kind"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	submission, err := h.sys.Submit(kind, req.Key, req.Data, req.ImagePath)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	resp := SubmitResponse{Submission: submission}
	if h.renderer != nil {
		pdf, err := h.renderer.RenderFilledForm(kind, req.Key, &submission.Record)
		if err != nil {
			h.logger.Error("form pdf render failed", "kind", kind, "error", err)
		} else {
			resp.PDF = pdf
		}
	}

	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Load returns the latest record for a kind and key tuple. Key components
// are passed as repeated `key` query parameters.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(r.PathValue("kind"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	record, err := h.sys.Load(kind, r.URL.Query()["key"]...)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if record == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNoRecord)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}
