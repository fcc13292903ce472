// Package mcp provides a Model Context Protocol server for partfinder.
// It lets AI assistants search the parts catalog with the same facet
// rules as the CLI and the TUI.
package mcp

import "errors"

var (
	// ErrMissingController is returned when no controller factory is provided.
	ErrMissingController = errors.New("mcp: controller factory is required")

	// ErrNoBrowseService is returned by lookups when no browse service is configured.
	ErrNoBrowseService = errors.New("mcp: browse service not configured")
)
