package services

import (
	"context"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Search returns the task that runs the product query for the current state.
//
// Searches are counted while in flight. Overlapping searches all run; the
// one that completes last determines the results.
func (c *FacetController) Search() driving.Task {
	q := c.state.Query()
	c.inFlight++

	logger.Section("Product Search")
	logger.Debug("Query: %s", q.Encode())

	return c.task(func(ctx context.Context) driving.Outcome {
		products, err := c.catalog.Products(ctx, q)
		return driving.Outcome{Kind: driving.OutcomeSearch, Query: q, Products: products, Err: err}
	})
}

func (c *FacetController) applySearch(o driving.Outcome) {
	if c.inFlight > 0 {
		c.inFlight--
	}
	c.searched = true

	if o.Err != nil {
		logger.Warn("Product search %q failed: %v", o.Query.Encode(), o.Err)
		c.results = nil
		c.searchErr = o.Err
		c.message = domain.SearchFailedMessage
		return
	}

	c.results = o.Products
	c.searchErr = nil
	c.message = ""
	logger.Debug("Search returned %d products", len(o.Products))
}
