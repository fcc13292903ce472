package catalogapi

import (
	"strings"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// Product is a catalog product as it appears on the wire.
type Product struct {
	ID            FlexString `json:"ID"`
	Name          FlexString `json:"Name"`
	Description   FlexString `json:"Description,omitempty"`
	Price         FlexString `json:"Price,omitempty"`
	RegularPrice  FlexString `json:"Regular_price,omitempty"`
	SKU           FlexString `json:"SKU,omitempty"`
	Categories    FlexString `json:"Categories,omitempty"`
	InStock       FlexBool   `json:"In_stock"`
	Weight        FlexString `json:"Weight,omitempty"`
	Length        FlexString `json:"Length,omitempty"`
	Width         FlexString `json:"Width,omitempty"`
	Height        FlexString `json:"Height,omitempty"`
	Images        FlexString `json:"Images,omitempty"`
	ImageURL      FlexString `json:"Image_url,omitempty"`
	MetaYearStart FlexInt    `json:"Meta_year_start,omitempty"`
	MetaYearEnd   FlexInt    `json:"Meta_year_end,omitempty"`
}

// ToDomain converts the payload into a domain product.
// Image_url wins over Images; Images may list several URLs.
func (p Product) ToDomain() domain.Product {
	image := p.ImageURL.String()
	if image == "" {
		image = firstImage(p.Images.String())
	}
	return domain.Product{
		ID:           p.ID.String(),
		Name:         p.Name.String(),
		Description:  p.Description.String(),
		Price:        p.Price.String(),
		RegularPrice: p.RegularPrice.String(),
		SKU:          p.SKU.String(),
		Categories:   p.Categories.String(),
		InStock:      bool(p.InStock),
		Weight:       p.Weight.String(),
		Length:       p.Length.String(),
		Width:        p.Width.String(),
		Height:       p.Height.String(),
		ImageURL:     image,
		YearStart:    int(p.MetaYearStart),
		YearEnd:      int(p.MetaYearEnd),
	}
}

// ProductFromDomain converts a domain product into its wire form.
func ProductFromDomain(p domain.Product) Product {
	return Product{
		ID:            FlexString(p.ID),
		Name:          FlexString(p.Name),
		Description:   FlexString(p.Description),
		Price:         FlexString(p.Price),
		RegularPrice:  FlexString(p.RegularPrice),
		SKU:           FlexString(p.SKU),
		Categories:    FlexString(p.Categories),
		InStock:       FlexBool(p.InStock),
		Weight:        FlexString(p.Weight),
		Length:        FlexString(p.Length),
		Width:         FlexString(p.Width),
		Height:        FlexString(p.Height),
		Images:        FlexString(p.ImageURL),
		ImageURL:      FlexString(p.ImageURL),
		MetaYearStart: FlexInt(p.YearStart),
		MetaYearEnd:   FlexInt(p.YearEnd),
	}
}

// ProductsToDomain converts a product list.
func ProductsToDomain(in []Product) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.ToDomain())
	}
	return out
}

// ProductsFromDomain converts a product list into its wire form.
func ProductsFromDomain(in []domain.Product) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, ProductFromDomain(p))
	}
	return out
}

func firstImage(images string) string {
	first, _, _ := strings.Cut(images, ",")
	return strings.TrimSpace(first)
}

// YearRange is the payload of /years-range.
type YearRange struct {
	MinYear FlexInt `json:"minYear"`
	MaxYear FlexInt `json:"maxYear"`
}

// ToDomain converts the payload into a domain range.
func (r YearRange) ToDomain() domain.YearRange {
	return domain.YearRange{Min: int(r.MinYear), Max: int(r.MaxYear)}
}

// YearRangeFromDomain converts a domain range into its wire form.
func YearRangeFromDomain(r domain.YearRange) YearRange {
	return YearRange{MinYear: FlexInt(r.Min), MaxYear: FlexInt(r.Max)}
}
