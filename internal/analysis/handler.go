package analysis

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/internal/scoring"
	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// Handler provides HTTP endpoints for the analysis flow: schema upload,
// data processing against the analysed schema, and NDMO scoring.
type Handler struct {
	sys           System
	processor     quality.System
	scorer        scoring.System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler wiring the analyser to its collaborating
// systems.
func NewHandler(
	sys System,
	processor quality.System,
	scorer scoring.System,
	logger *slog.Logger,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		processor:     processor,
		scorer:        scorer,
		logger:        logger.With("handler", "analysis"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/schema", Handler: h.AnalyseSchema},
			{Method: "GET", Pattern: "/schema/{id}", Handler: h.GetSchema},
			{Method: "POST", Pattern: "/data/{id}", Handler: h.ProcessData},
			{Method: "GET", Pattern: "/score/{id}", Handler: h.Score},
		},
	}
}

// AnalyseSchema accepts a multipart workbook upload describing the table
// schema, analyses it, and opens a session keyed by the analysis ID.
func (h *Handler) AnalyseSchema(w http.ResponseWriter, r *http.Request) {
	file, fileName, ok := h.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.sys.Analyse(file, fileName)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sys.Sessions().Put(result)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// GetSchema returns the schema analysis for an existing session.
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	session, err := h.sys.Sessions().Get(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, session.Schema)
}

// ProcessData accepts a data workbook upload and runs the quality pipeline
// against the session's analysed schema. The resulting report is attached
// to the session for scoring.
func (h *Handler) ProcessData(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, err := h.sys.Sessions().Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, fileName, ok := h.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	wb, err := spreadsheet.OpenReader(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: %v", ErrSchemaUnreadable, err))
		return
	}
	defer wb.Close()

	sheet, err := wb.First()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: %v", ErrSchemaUnreadable, err))
		return
	}

	report := h.processor.Process(sheet, fileName, session.Schema.ColumnSpecs())
	if err := h.sys.Sessions().SetQuality(id, report); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Score computes the NDMO compliance result for a session. The quality
// metrics are included when the data file has been processed; otherwise
// scoring covers the schema attributes alone.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	session, err := h.sys.Sessions().Get(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	in := scoring.Inputs{
		TotalColumns:   session.Schema.TotalColumns,
		HasPrimaryKey:  session.Schema.HasPrimaryKey,
		HasForeignKeys: session.Schema.HasForeignKeys,
		HasAuditTrail:  session.Schema.HasAuditTrail,
	}
	if session.Quality != nil {
		in.Metrics = &session.Quality.Metrics
	}

	handlers.RespondJSON(w, http.StatusOK, h.scorer.Score(in))
}

func (h *Handler) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return nil, "", false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return nil, "", false
	}
	return f, header.Filename, true
}
