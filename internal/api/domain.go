package api

import (
	"github.com/rasidhq/rasid/internal/analysis"
	"github.com/rasidhq/rasid/internal/catalogue"
	"github.com/rasidhq/rasid/internal/forms"
	"github.com/rasidhq/rasid/internal/importer"
	"github.com/rasidhq/rasid/internal/quality"
	"github.com/rasidhq/rasid/internal/render"
	"github.com/rasidhq/rasid/internal/scoring"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalogue catalogue.System
	Importer  importer.System
	Analysis  analysis.System
	Quality   quality.System
	Scoring   scoring.System
	Forms     forms.System
	Render    render.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	catalogueSystem := catalogue.New(runtime.Workspace, runtime.Logger)
	importerSystem := importer.New(runtime.Workspace, catalogueSystem, runtime.Logger)

	qualitySystem := quality.New(runtime.Logger)
	scoringSystem := scoring.New(runtime.Logger)
	analysisSystem := analysis.New(runtime.Logger)

	formsSystem := forms.New(runtime.Workspace, runtime.Logger)
	renderSystem := render.New(runtime.Workspace, runtime.Logger)

	return &Domain{
		Catalogue: catalogueSystem,
		Importer:  importerSystem,
		Analysis:  analysisSystem,
		Quality:   qualitySystem,
		Scoring:   scoringSystem,
		Forms:     formsSystem,
		Render:    renderSystem,
	}
}
