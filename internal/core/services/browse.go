package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// Ensure BrowseService implements the interface.
var _ driving.BrowseService = (*BrowseService)(nil)

// BrowseService answers one-shot catalog lookups with normalised results.
type BrowseService struct {
	catalog driven.CatalogService
}

// NewBrowseService creates a new browse service.
func NewBrowseService(catalog driven.CatalogService) *BrowseService {
	return &BrowseService{catalog: catalog}
}

// Categories returns the normalised category list.
func (s *BrowseService) Categories(ctx context.Context) ([]string, error) {
	raw, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return domain.NormaliseCategories(raw), nil
}

// Makes returns makes matching term, with grouped values split.
func (s *BrowseService) Makes(ctx context.Context, term string) ([]string, error) {
	raw, err := s.catalog.Makes(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	return domain.SplitGrouped(raw), nil
}

// Models returns the models for a make, optionally narrowed by year.
func (s *BrowseService) Models(ctx context.Context, mk, year string) ([]string, error) {
	if mk == "" {
		return nil, fmt.Errorf("%w: make is required", domain.ErrInvalidInput)
	}
	if year != "" {
		if _, err := domain.ParseYear(year); err != nil {
			return nil, err
		}
	}
	raw, err := s.catalog.Models(ctx, mk, year)
	if err != nil {
		return nil, fmt.Errorf("list models for %s: %w", mk, err)
	}
	return domain.Dedupe(raw), nil
}

// YearRange returns the year bounds for a make, or the default range
// when no make is given or the catalog has no bounds.
func (s *BrowseService) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	if mk == "" {
		return domain.DefaultYearRange(), nil
	}
	r, err := s.catalog.YearRange(ctx, mk)
	if err != nil {
		return domain.YearRange{}, fmt.Errorf("year range for %s: %w", mk, err)
	}
	return r.OrDefault(), nil
}

// Product returns a single product by ID.
func (s *BrowseService) Product(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}
