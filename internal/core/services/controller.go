package services

import (
	"context"
	"time"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Ensure FacetController implements the interface.
var _ driving.FacetController = (*FacetController)(nil)

// ControllerConfig tunes a FacetController. Zero values use the defaults.
type ControllerConfig struct {
	// MinTermLength is the rune count below which typeahead is not issued.
	MinTermLength int

	// Timeout bounds every catalog round trip made by a task.
	Timeout time.Duration
}

// ControllerConfigFrom derives controller tuning from application settings.
func ControllerConfigFrom(settings *domain.AppSettings) ControllerConfig {
	return ControllerConfig{
		MinTermLength: settings.Search.MinTermLength,
		Timeout:       settings.Catalog.Timeout(),
	}
}

// FacetController keeps the facet state of one search session consistent
// with the catalog.
//
// Every method runs on the owning loop. Catalog round trips are returned
// as driving.Task values; their outcomes come back through Apply, which
// drops anything superseded by a later request or a facet change.
type FacetController struct {
	catalog       driven.CatalogService
	minTermLength int
	timeout       time.Duration

	state      domain.FacetState
	makes      []string
	models     []string
	categories []string
	yearRange  domain.YearRange

	// Typeahead candidates and the latest issued sequence, per facet.
	suggestions map[domain.Facet][]string
	seq         map[domain.Facet]uint64

	results   []domain.Product
	searched  bool
	inFlight  int
	searchErr error
	message   string
}

// NewFacetController creates a controller with empty state.
func NewFacetController(catalog driven.CatalogService, cfg ControllerConfig) *FacetController {
	if cfg.MinTermLength <= 0 {
		cfg.MinTermLength = domain.DefaultMinTermLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeoutSeconds * time.Second
	}
	return &FacetController{
		catalog:       catalog,
		minTermLength: cfg.MinTermLength,
		timeout:       cfg.Timeout,
		yearRange:     domain.DefaultYearRange(),
		suggestions:   make(map[domain.Facet][]string),
		seq:           make(map[domain.Facet]uint64),
	}
}

// Init returns the tasks that load the make and category option lists.
func (c *FacetController) Init() []driving.Task {
	return []driving.Task{
		c.task(func(ctx context.Context) driving.Outcome {
			values, err := c.catalog.Makes(ctx, "")
			return driving.Outcome{Kind: driving.OutcomeMakes, Values: values, Err: err}
		}),
		c.task(func(ctx context.Context) driving.Outcome {
			values, err := c.catalog.Categories(ctx)
			return driving.Outcome{Kind: driving.OutcomeCategories, Values: values, Err: err}
		}),
	}
}

// Apply folds an outcome into the state and returns follow-up tasks.
func (c *FacetController) Apply(o driving.Outcome) []driving.Task {
	switch o.Kind {
	case driving.OutcomeSuggestions:
		c.applySuggestions(o)
	case driving.OutcomeMakes:
		c.applyMakes(o)
	case driving.OutcomeCategories:
		c.applyCategories(o)
	case driving.OutcomeModels:
		c.applyModels(o)
	case driving.OutcomeYearRange:
		return c.applyYearRange(o)
	case driving.OutcomeSearch:
		c.applySearch(o)
	default:
		logger.Warn("Ignoring outcome of unknown kind %d", o.Kind)
	}
	return nil
}

func (c *FacetController) applyMakes(o driving.Outcome) {
	if o.Err != nil {
		logger.Warn("Loading makes failed: %v", o.Err)
		c.makes = nil
		return
	}
	c.makes = domain.SplitGrouped(o.Values)
	logger.Debug("Loaded %d makes", len(c.makes))
}

func (c *FacetController) applyCategories(o driving.Outcome) {
	if o.Err != nil {
		logger.Warn("Loading categories failed: %v", o.Err)
		c.categories = nil
		return
	}
	c.categories = domain.NormaliseCategories(o.Values)
	logger.Debug("Loaded %d categories", len(c.categories))
}

// task wraps fn with the per-request timeout.
func (c *FacetController) task(fn func(ctx context.Context) driving.Outcome) driving.Task {
	timeout := c.timeout
	return func(ctx context.Context) driving.Outcome {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fn(ctx)
	}
}

// State returns a copy of the current facet values.
func (c *FacetController) State() domain.FacetState {
	return c.state
}

// Options returns the option list for make, model or category.
func (c *FacetController) Options(f domain.Facet) []string {
	switch f {
	case domain.FacetMake:
		return c.makes
	case domain.FacetModel:
		return c.models
	case domain.FacetCategory:
		return c.categories
	default:
		return nil
	}
}

// Suggestions returns the current typeahead candidates for a facet.
func (c *FacetController) Suggestions(f domain.Facet) []string {
	return c.suggestions[f]
}

// YearRange returns the year bounds for the selected make.
func (c *FacetController) YearRange() domain.YearRange {
	return c.yearRange
}

// Query returns the product query for the current state.
func (c *FacetController) Query() domain.ProductQuery {
	return c.state.Query()
}

// Results returns the products of the most recently completed search.
func (c *FacetController) Results() []domain.Product {
	return c.results
}

// Busy returns true while any search is in flight.
func (c *FacetController) Busy() bool {
	return c.inFlight > 0
}

// Searched returns true once a search has completed.
func (c *FacetController) Searched() bool {
	return c.searched
}

// SearchError returns the underlying error of the last failed search.
func (c *FacetController) SearchError() error {
	return c.searchErr
}

// Message returns the user-facing status of the last search.
func (c *FacetController) Message() string {
	return c.message
}
