// Package domain defines the core business entities for partfinder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Facet: One search dimension (make, model, year, category, keyword, SKU)
//   - FacetState: The current value of every facet
//   - YearRange: The valid model years for the selected make
//   - ProductQuery: The filter sent to the catalog
//   - Product: A catalog item returned by a search
//
// It also holds the pure parsing rules the controller relies on, such as
// the escaped-comma category convention.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
