package driving

import (
	"context"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// BrowseService answers one-shot catalog lookups outside a search session.
// Option lists are returned normalised.
type BrowseService interface {
	// Categories returns the normalised category list.
	Categories(ctx context.Context) ([]string, error)

	// Makes returns makes matching term, with grouped values split.
	Makes(ctx context.Context, term string) ([]string, error)

	// Models returns the models for a make, optionally narrowed by year.
	Models(ctx context.Context, make, year string) ([]string, error)

	// YearRange returns the year bounds for a make, or the default range.
	YearRange(ctx context.Context, make string) (domain.YearRange, error)

	// Product returns a single product by ID.
	Product(ctx context.Context, id string) (*domain.Product, error)
}
