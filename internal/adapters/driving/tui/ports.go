// Package tui provides an interactive terminal user interface for partfinder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
type Ports struct {
	// NewController starts a search session. Required.
	NewController driving.ControllerFactory

	// Browse fetches full product records for the detail view.
	Browse driving.BrowseService

	// Settings backs the settings view.
	Settings driving.SettingsService

	// Watcher reports config file changes; each change starts a new session.
	Watcher driven.ConfigWatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.NewController == nil {
		return ErrMissingController
	}
	return nil
}
