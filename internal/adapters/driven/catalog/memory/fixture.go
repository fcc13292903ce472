package memory

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// Fixture is the on-disk form of a catalog.
type Fixture struct {
	Vehicles []Vehicle        `toml:"vehicles"`
	Products []FixtureProduct `toml:"products"`
}

// Vehicle is one make/model with its production years.
// Make may be a comma-joined group such as "Chevrolet, GMC".
type Vehicle struct {
	Make      string `toml:"make"`
	Model     string `toml:"model"`
	YearStart int    `toml:"year_start"`
	YearEnd   int    `toml:"year_end"`
}

// Fitment ties a product to a make and model.
type Fitment struct {
	Make  string `toml:"make"`
	Model string `toml:"model"`
}

// FixtureProduct is a product with the vehicles it fits.
// A product without fitments fits every vehicle.
type FixtureProduct struct {
	ID           string    `toml:"id"`
	Name         string    `toml:"name"`
	Description  string    `toml:"description"`
	Price        string    `toml:"price"`
	RegularPrice string    `toml:"regular_price"`
	SKU          string    `toml:"sku"`
	Categories   string    `toml:"categories"`
	InStock      bool      `toml:"in_stock"`
	Weight       string    `toml:"weight"`
	Length       string    `toml:"length"`
	Width        string    `toml:"width"`
	Height       string    `toml:"height"`
	ImageURL     string    `toml:"image_url"`
	YearStart    int       `toml:"year_start"`
	YearEnd      int       `toml:"year_end"`
	Fits         []Fitment `toml:"fits"`
}

// Product returns the domain view of the fixture product.
func (p FixtureProduct) Product() domain.Product {
	return domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		SKU:          p.SKU,
		Categories:   p.Categories,
		InStock:      p.InStock,
		Weight:       p.Weight,
		Length:       p.Length,
		Width:        p.Width,
		Height:       p.Height,
		ImageURL:     p.ImageURL,
		YearStart:    p.YearStart,
		YearEnd:      p.YearEnd,
	}
}

// ParseFixture decodes a TOML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFixture reads and decodes a TOML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

func (f *Fixture) validate() error {
	seen := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		if p.ID == "" {
			return fmt.Errorf("%w: product %d has no id", domain.ErrInvalidInput, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
	}
	for i, v := range f.Vehicles {
		if v.Make == "" || v.Model == "" {
			return fmt.Errorf("%w: vehicle %d needs make and model", domain.ErrInvalidInput, i)
		}
		if v.YearStart > v.YearEnd {
			return fmt.Errorf("%w: vehicle %s %s has inverted years", domain.ErrInvalidInput, v.Make, v.Model)
		}
	}
	return nil
}
