// Package driving holds the interfaces the CLI, TUI and MCP server call
// into the core with.
//
//   - FacetController: one interactive search session. Operations return
//     Tasks; the caller runs them and feeds each Outcome back through Apply.
//   - BrowseService: one-shot option lists and product lookups.
//   - SettingsService: reading and changing configuration.
//
// Implementations live in internal/core/services.
package driving
