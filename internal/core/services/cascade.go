package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// SetFacet assigns a facet value and returns the dependent refetches.
//
// Make and year changes cascade to the model list and year range.
// Category, keyword and SKU are stored as given.
func (c *FacetController) SetFacet(f domain.Facet, value string) ([]driving.Task, error) {
	value = strings.TrimSpace(value)
	switch f {
	case domain.FacetMake:
		return c.setMake(value), nil
	case domain.FacetModel:
		return nil, c.setModel(value)
	case domain.FacetYear:
		return c.setYear(value)
	case domain.FacetCategory, domain.FacetKeyword, domain.FacetSKU:
		c.state = c.state.With(f, value)
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFacet, f)
	}
}

func (c *FacetController) setMake(value string) []driving.Task {
	if value == c.state.Make {
		return nil
	}
	logger.Debug("Make changed %q -> %q, resetting model and year", c.state.Make, value)

	c.state.Make = value
	c.state.Model = ""
	c.state.Year = ""
	c.models = nil
	c.yearRange = domain.DefaultYearRange()
	c.clearSuggestions(domain.FacetModel)

	if value == "" {
		return nil
	}
	return []driving.Task{c.fetchModels(value, ""), c.fetchYearRange(value)}
}

func (c *FacetController) setModel(value string) error {
	if value != "" && !domain.Contains(c.models, value) {
		return fmt.Errorf("%w: %q", domain.ErrModelNotAvailable, value)
	}
	c.state.Model = value
	return nil
}

func (c *FacetController) setYear(value string) ([]driving.Task, error) {
	if value == "" {
		return c.changeYear(""), nil
	}

	year, err := domain.ParseYear(value)
	if err != nil {
		return nil, err
	}
	if !c.yearRange.Contains(year) {
		tasks := c.changeYear("")
		return tasks, fmt.Errorf("%w: %d is outside %s", domain.ErrYearOutOfRange, year, c.yearRange)
	}
	return c.changeYear(strconv.Itoa(year)), nil
}

// changeYear stores year and refreshes the model list when the
// (make, year) pair actually changed.
func (c *FacetController) changeYear(year string) []driving.Task {
	if year == c.state.Year {
		return nil
	}
	c.state.Year = year
	if c.state.Make == "" {
		return nil
	}
	return []driving.Task{c.fetchModels(c.state.Make, year)}
}

func (c *FacetController) fetchModels(mk, year string) driving.Task {
	logger.Debug("Fetching models for make=%q year=%q", mk, year)
	return c.task(func(ctx context.Context) driving.Outcome {
		values, err := c.catalog.Models(ctx, mk, year)
		return driving.Outcome{Kind: driving.OutcomeModels, Make: mk, Year: year, Values: values, Err: err}
	})
}

func (c *FacetController) fetchYearRange(mk string) driving.Task {
	logger.Debug("Fetching year range for make=%q", mk)
	return c.task(func(ctx context.Context) driving.Outcome {
		r, err := c.catalog.YearRange(ctx, mk)
		return driving.Outcome{Kind: driving.OutcomeYearRange, Make: mk, Range: r, Err: err}
	})
}

func (c *FacetController) applyModels(o driving.Outcome) {
	// Tags are compared by value, so a reply for a make that was left and
	// then chosen again is still applied.
	if o.Make != c.state.Make || o.Year != c.state.Year {
		logger.Debug("Dropping stale models for make=%q year=%q", o.Make, o.Year)
		return
	}
	if o.Err != nil {
		logger.Warn("Fetching models for %q failed: %v", o.Make, o.Err)
		c.models = nil
	} else {
		c.models = domain.Dedupe(o.Values)
	}
	if c.state.Model != "" && !domain.Contains(c.models, c.state.Model) {
		logger.Debug("Model %q no longer available, resetting", c.state.Model)
		c.state.Model = ""
	}
}

func (c *FacetController) applyYearRange(o driving.Outcome) []driving.Task {
	if o.Make != c.state.Make {
		logger.Debug("Dropping stale year range for make=%q", o.Make)
		return nil
	}
	if o.Err != nil {
		logger.Warn("Fetching year range for %q failed: %v", o.Make, o.Err)
		c.yearRange = domain.DefaultYearRange()
	} else {
		c.yearRange = o.Range.OrDefault()
	}

	if c.state.Year == "" {
		return nil
	}
	year, err := strconv.Atoi(c.state.Year)
	if err == nil && c.yearRange.Contains(year) {
		return nil
	}
	logger.Debug("Year %s outside %s, clearing", c.state.Year, c.yearRange)
	return c.changeYear("")
}
