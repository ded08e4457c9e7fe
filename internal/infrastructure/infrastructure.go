// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, lifecycle, the
// workspace) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rasidhq/rasid/internal/config"
	"github.com/rasidhq/rasid/pkg/lifecycle"
	"github.com/rasidhq/rasid/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Workspace storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	workspace, err := storage.New(&cfg.Workspace, logger)
	if err != nil {
		return nil, fmt.Errorf("workspace init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Workspace: workspace,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Workspace.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("workspace start failed: %w", err)
	}
	return nil
}
