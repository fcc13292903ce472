// Package catalogserver serves a driven.CatalogService over the catalog
// HTTP API described in package catalogapi.
//
// It backs `partfinder fixture serve`, which puts the in-memory fixture
// catalog behind real HTTP so the REST client, the TUI and the MCP server
// can be exercised without the production catalog.
package catalogserver
