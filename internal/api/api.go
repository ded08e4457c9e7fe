// Package api assembles the API module with all domain systems and route
// registration.
package api

import (
	"net/http"

	"github.com/rasidhq/rasid/internal/config"
	"github.com/rasidhq/rasid/internal/infrastructure"
	"github.com/rasidhq/rasid/pkg/middleware"
	"github.com/rasidhq/rasid/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The catalogue store's initial load is registered as a lifecycle startup
// hook so the snapshot is in place before the server accepts traffic.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	runtime.Lifecycle.OnStartup(domain.Catalogue.Load)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
