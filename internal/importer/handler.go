package importer

import (
	"log/slog"
	"net/http"

	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
)

// Handler provides HTTP endpoints for catalogue import.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "importer"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for import endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/catalogue",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/import", Handler: h.Import},
		},
	}
}

// Import processes a multipart upload containing the vendor workbook,
// runs the importer, and responds with statistics and the warnings log.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	result, err := h.sys.Import(file, header.Filename)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
