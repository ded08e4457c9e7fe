package api

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/rasidhq/rasid/pkg/handlers"
	"github.com/rasidhq/rasid/pkg/routes"
	"github.com/rasidhq/rasid/pkg/storage"
)

// workspaceHandler exposes read access to workspace artifacts: imported
// snapshots, form records, and rendered PDFs.
type workspaceHandler struct {
	workspace storage.System
	logger    *slog.Logger
}

func newWorkspaceHandler(workspace storage.System, logger *slog.Logger) *workspaceHandler {
	return &workspaceHandler{
		workspace: workspace,
		logger:    logger.With("handler", "workspace"),
	}
}

func (h *workspaceHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/workspace",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{dir}", Handler: h.list},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
		},
	}
}

func (h *workspaceHandler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.workspace.List(r.PathValue("dir"), r.URL.Query().Get("prefix"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	if names == nil {
		names = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, names)
}

func (h *workspaceHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	data, err := h.workspace.Read(key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
