package driven

import (
	"context"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// CatalogService is the remote product catalog the search controller queries.
//
// Implementations return raw values as the catalog sends them: categories
// may use the escaped-comma convention and makes may be comma-joined groups.
// Normalisation is the caller's job.
//
// Errors must wrap domain.ErrNetworkFailure for transport failures and
// timeouts, and be a *domain.ServiceError for non-2xx responses.
//
// Implementations include:
//   - rest: HTTP client for the catalog API
//   - memory: fixture catalog for tests, demos and the fixture server
type CatalogService interface {
	// Categories returns every raw category string.
	Categories(ctx context.Context) ([]string, error)

	// Makes returns makes matching term. An empty term lists every make.
	Makes(ctx context.Context, term string) ([]string, error)

	// Models returns the models for a make, narrowed to year when non-empty.
	Models(ctx context.Context, make, year string) ([]string, error)

	// YearRange returns the model-year bounds for a make.
	// A zero range means the catalog has no bounds for it.
	YearRange(ctx context.Context, make string) (domain.YearRange, error)

	// Suggestions returns keyword completions for term.
	Suggestions(ctx context.Context, term string) ([]string, error)

	// Products returns products matching every parameter of query.
	Products(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error)

	// Product returns a single product by ID.
	// Returns an error matching domain.ErrNotFound if it does not exist.
	Product(ctx context.Context, id string) (*domain.Product, error)
}
