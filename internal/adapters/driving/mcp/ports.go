package mcp

import (
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// NewController starts a search session for each search_products call.
	NewController driving.ControllerFactory

	// Browse answers option list and product lookups. Optional.
	Browse driving.BrowseService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.NewController == nil {
		return ErrMissingController
	}
	return nil
}
