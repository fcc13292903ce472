package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// ApplyOrder is the order in which ApplyFacets sets facets.
//
// Year comes before model: a year change refetches the model list and
// drops a model that is not sold in that year, so setting the model last
// checks it against the final (make, year) pair.
var ApplyOrder = []domain.Facet{
	domain.FacetMake,
	domain.FacetYear,
	domain.FacetModel,
	domain.FacetCategory,
	domain.FacetKeyword,
	domain.FacetSKU,
}

// FacetError reports a facet value the controller rejected.
type FacetError struct {
	Facet domain.Facet
	Value string
	Err   error
}

func (e *FacetError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Facet, e.Value, e.Err)
}

func (e *FacetError) Unwrap() error { return e.Err }

// ApplyFacets sets every non-empty facet on c in ApplyOrder, driving each
// cascade to completion before the next facet is set.
//
// A rejected value stops the walk with a *FacetError; c keeps the facets
// applied before it.
func ApplyFacets(ctx context.Context, c driving.FacetController, facets domain.FacetState) error {
	for _, f := range ApplyOrder {
		value := strings.TrimSpace(facets.Get(f))
		if value == "" {
			continue
		}
		tasks, err := c.SetFacet(f, value)
		if err != nil {
			// Out-of-range years still queue the model refetch.
			if driveErr := Drive(ctx, c, tasks...); driveErr != nil {
				return driveErr
			}
			return &FacetError{Facet: f, Value: value, Err: err}
		}
		if err := Drive(ctx, c, tasks...); err != nil {
			return err
		}
	}
	return nil
}
