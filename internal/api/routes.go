package api

import (
	"net/http"

	"github.com/rasidhq/rasid/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Catalogue.Handler().Routes(),
		domain.Importer.Handler(runtime.MaxUploadSize).Routes(),
		domain.Analysis.Handler(domain.Quality, domain.Scoring, runtime.MaxUploadSize).Routes(),
		domain.Forms.Handler(domain.Render).Routes(),
		domain.Render.Handler().Routes(),
		newWorkspaceHandler(runtime.Workspace, runtime.Logger).routes(),
	)
}
