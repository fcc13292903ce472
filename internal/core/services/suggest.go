package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Suggest requests typeahead candidates for a partial term.
//
// Every call advances the facet's sequence, so a response to an earlier
// call is dropped even when this call issues nothing.
func (c *FacetController) Suggest(f domain.Facet, term string) []driving.Task {
	if !f.SupportsSuggestions() {
		return nil
	}

	c.seq[f]++
	seq := c.seq[f]

	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < c.minTermLength {
		c.suggestions[f] = nil
		return nil
	}

	var fetch func(ctx context.Context) ([]string, error)
	switch f {
	case domain.FacetMake:
		fetch = func(ctx context.Context) ([]string, error) {
			values, err := c.catalog.Makes(ctx, term)
			return domain.SplitGrouped(values), err
		}
	case domain.FacetKeyword:
		fetch = func(ctx context.Context) ([]string, error) {
			values, err := c.catalog.Suggestions(ctx, term)
			return domain.Dedupe(values), err
		}
	case domain.FacetModel:
		if c.state.Make == "" {
			c.suggestions[f] = nil
			return nil
		}
		mk, year := c.state.Make, c.state.Year
		fetch = func(ctx context.Context) ([]string, error) {
			values, err := c.catalog.Models(ctx, mk, year)
			return domain.FilterByTerm(domain.Dedupe(values), term), err
		}
	}

	logger.Debug("Suggest %s %q (seq %d)", f, term, seq)
	return []driving.Task{c.task(func(ctx context.Context) driving.Outcome {
		values, err := fetch(ctx)
		return driving.Outcome{
			Kind:   driving.OutcomeSuggestions,
			Facet:  f,
			Seq:    seq,
			Values: values,
			Err:    err,
		}
	})}
}

func (c *FacetController) applySuggestions(o driving.Outcome) {
	if o.Seq != c.seq[o.Facet] {
		logger.Debug("Dropping stale %s suggestions (seq %d, latest %d)", o.Facet, o.Seq, c.seq[o.Facet])
		return
	}
	if o.Err != nil {
		logger.Warn("Fetching %s suggestions failed: %v", o.Facet, o.Err)
		c.suggestions[o.Facet] = nil
		return
	}
	c.suggestions[o.Facet] = o.Values
}

// clearSuggestions hides candidates for f and drops any in-flight response.
func (c *FacetController) clearSuggestions(f domain.Facet) {
	c.seq[f]++
	c.suggestions[f] = nil
}
