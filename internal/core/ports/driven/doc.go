// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogService: The remote product catalog (makes, models, years,
//     categories, suggestions, products)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ConfigWatcher: Change notification for ConfigStore. Without it,
//     settings are read once at startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
