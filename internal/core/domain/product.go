package domain

// Product is a catalog item as returned by a product search.
// The controller passes it through untouched.
type Product struct {
	// ID is the catalog identifier.
	ID string

	// Name is the display name.
	Name string

	// Description is free-form product text.
	Description string

	// Price is the current selling price as returned by the catalog.
	Price string

	// RegularPrice is the undiscounted price.
	RegularPrice string

	// SKU is the stock keeping unit.
	SKU string

	// Categories is the raw category string (may use the escaped-comma convention).
	Categories string

	// InStock reports stock availability.
	InStock bool

	// Weight is in kilograms.
	Weight string

	// Length, Width and Height are in centimetres.
	Length string
	Width  string
	Height string

	// ImageURL points at the primary product image.
	ImageURL string

	// YearStart and YearEnd bound the model years the product fits.
	YearStart int
	YearEnd   int
}

// CategoryList returns the product's categories parsed for display.
func (p Product) CategoryList() []string {
	return ParseCategory(p.Categories)
}

// Dimensions formats length x width x height, or "" if none are known.
func (p Product) Dimensions() string {
	if p.Length == "" && p.Width == "" && p.Height == "" {
		return ""
	}
	return p.Length + " x " + p.Width + " x " + p.Height
}

// SearchResult is the ordered product list returned for one query.
type SearchResult struct {
	// Query is the filter that produced the products.
	Query ProductQuery

	// Products are in catalog order.
	Products []Product
}

// Count returns the number of products.
func (r SearchResult) Count() int {
	return len(r.Products)
}

// IsEmpty returns true for a search that matched nothing.
// An empty result is a valid state, not an error.
func (r SearchResult) IsEmpty() bool {
	return len(r.Products) == 0
}
