// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// FacetController is the heart of the package: it owns the facet state of
// a search session, cascades make and year changes to the dependent option
// lists, and discards catalog responses that a later request superseded.
// Drive runs a controller headlessly for the CLI and MCP server.
package services
