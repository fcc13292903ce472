// Package memory provides a fixture-backed catalog.
//
// It implements the catalog port from a TOML fixture so the CLI, TUI and
// MCP server can run without the live catalog, and so the fixture server
// has something to serve.
package memory

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.CatalogService = (*Catalog)(nil)

//go:embed seed.toml
var seedFixture []byte

// maxSuggestions caps keyword completions.
const maxSuggestions = 10

// Catalog is an in-memory catalog. It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	vehicles []Vehicle
	products []FixtureProduct
}

// New creates a catalog from a fixture.
func New(f *Fixture) *Catalog {
	c := &Catalog{}
	c.Replace(f)
	return c
}

// NewSeeded creates a catalog holding the built-in demo data.
func NewSeeded() *Catalog {
	f, err := ParseFixture(seedFixture)
	if err != nil {
		panic(fmt.Sprintf("memory: invalid seed fixture: %v", err))
	}
	return New(f)
}

// Replace swaps the catalog contents.
func (c *Catalog) Replace(f *Fixture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vehicles = append([]Vehicle(nil), f.Vehicles...)
	c.products = append([]FixtureProduct(nil), f.Products...)
}

// Categories returns the raw category string of every product.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw := make([]string, 0, len(c.products))
	for _, p := range c.products {
		raw = append(raw, p.Categories)
	}
	return domain.Dedupe(raw), nil
}

// Makes returns the vehicle makes containing term, ignoring case.
// Grouped makes are returned as stored.
func (c *Catalog) Makes(ctx context.Context, term string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	makes := make([]string, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		makes = append(makes, v.Make)
	}
	return domain.FilterByTerm(domain.Dedupe(makes), term), nil
}

// Models returns the models of a make, narrowed to those built in year.
func (c *Catalog) Models(ctx context.Context, mk, year string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	y, err := optionalYear(year)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	models := make([]string, 0)
	for _, v := range c.vehicles {
		if !makeMatches(v.Make, mk) {
			continue
		}
		if y != 0 && (y < v.YearStart || y > v.YearEnd) {
			continue
		}
		models = append(models, v.Model)
	}
	models = domain.Dedupe(models)
	sort.Strings(models)
	return models, nil
}

// YearRange returns the production years spanned by a make's vehicles.
func (c *Catalog) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	if err := ctx.Err(); err != nil {
		return domain.YearRange{}, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var r domain.YearRange
	for _, v := range c.vehicles {
		if !makeMatches(v.Make, mk) {
			continue
		}
		if r.Min == 0 || v.YearStart < r.Min {
			r.Min = v.YearStart
		}
		if v.YearEnd > r.Max {
			r.Max = v.YearEnd
		}
	}
	return r, nil
}

// Suggestions returns product names containing term, ignoring case.
func (c *Catalog) Suggestions(ctx context.Context, term string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.products))
	for _, p := range c.products {
		names = append(names, p.Name)
	}
	matches := domain.FilterByTerm(domain.Dedupe(names), term)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches, nil
}

// Products returns the products matching every parameter of query.
func (c *Catalog) Products(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	year, err := optionalYear(query.Get(domain.FacetYear))
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if matchesQuery(p, query, year) {
			out = append(out, p.Product())
		}
	}
	return out, nil
}

// Product returns a single product by ID.
func (c *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			product := p.Product()
			return &product, nil
		}
	}
	return nil, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
}

func matchesQuery(p FixtureProduct, q domain.ProductQuery, year int) bool {
	mk, model := q.Get(domain.FacetMake), q.Get(domain.FacetModel)
	if (mk != "" || model != "") && !fits(p, mk, model) {
		return false
	}
	if year != 0 {
		if p.YearStart != 0 && year < p.YearStart {
			return false
		}
		if p.YearEnd != 0 && year > p.YearEnd {
			return false
		}
	}
	if category := q.Get(domain.FacetCategory); category != "" && !hasCategory(p, category) {
		return false
	}
	if keyword := q.Get(domain.FacetKeyword); keyword != "" {
		text := strings.ToLower(p.Name + " " + p.Description)
		if !strings.Contains(text, strings.ToLower(keyword)) {
			return false
		}
	}
	if sku := q.Get(domain.FacetSKU); sku != "" && !strings.EqualFold(p.SKU, sku) {
		return false
	}
	return true
}

// fits reports whether the product fits the make and model.
// Products without fitments fit everything.
func fits(p FixtureProduct, mk, model string) bool {
	if len(p.Fits) == 0 {
		return true
	}
	for _, f := range p.Fits {
		if mk != "" && !makeMatches(f.Make, mk) {
			continue
		}
		if model != "" && !strings.EqualFold(f.Model, model) {
			continue
		}
		return true
	}
	return false
}

func hasCategory(p FixtureProduct, category string) bool {
	for _, c := range domain.ParseCategory(p.Categories) {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// makeMatches compares a possibly grouped make against a single make.
func makeMatches(stored, mk string) bool {
	for _, m := range domain.SplitGrouped([]string{stored}) {
		if strings.EqualFold(m, mk) {
			return true
		}
	}
	return false
}

func optionalYear(year string) (int, error) {
	if year == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, &domain.ServiceError{Endpoint: "year", Status: 400, Body: "year must be numeric"}
	}
	return y, nil
}
