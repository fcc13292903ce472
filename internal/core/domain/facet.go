package domain

import (
	"fmt"
	"strings"
)

// Facet identifies one independently settable search dimension.
type Facet string

// Available facets.
const (
	FacetMake     Facet = "make"
	FacetModel    Facet = "model"
	FacetYear     Facet = "year"
	FacetCategory Facet = "category"
	FacetKeyword  Facet = "keyword"
	FacetSKU      Facet = "sku"
)

// AllFacets returns every facet in canonical order.
// The order is also the parameter order of an encoded ProductQuery.
func AllFacets() []Facet {
	return []Facet{FacetMake, FacetModel, FacetYear, FacetCategory, FacetKeyword, FacetSKU}
}

// IsValid returns true if the facet is recognised.
func (f Facet) IsValid() bool {
	switch f {
	case FacetMake, FacetModel, FacetYear, FacetCategory, FacetKeyword, FacetSKU:
		return true
	default:
		return false
	}
}

// SupportsSuggestions returns true if typeahead lookups exist for the facet.
func (f Facet) SupportsSuggestions() bool {
	return f == FacetMake || f == FacetModel || f == FacetKeyword
}

// HasOptions returns true if the facet is chosen from a fetched option list.
func (f Facet) HasOptions() bool {
	return f == FacetMake || f == FacetModel || f == FacetCategory
}

// String returns the string representation.
func (f Facet) String() string {
	return string(f)
}

// Label returns a human-readable name for the facet.
func (f Facet) Label() string {
	switch f {
	case FacetMake:
		return "Make"
	case FacetModel:
		return "Model"
	case FacetYear:
		return "Year"
	case FacetCategory:
		return "Category"
	case FacetKeyword:
		return "Keyword"
	case FacetSKU:
		return "SKU"
	default:
		return "Unknown"
	}
}

// ParseFacet converts a name such as "Make" or "sku" into a Facet.
func ParseFacet(name string) (Facet, error) {
	f := Facet(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFacet, name)
	}
	return f, nil
}

// FacetState holds the current value of every facet.
// An empty string means the facet is unset.
type FacetState struct {
	Make     string
	Model    string
	Year     string
	Category string
	Keyword  string
	SKU      string
}

// Get returns the value of a facet.
func (s FacetState) Get(f Facet) string {
	switch f {
	case FacetMake:
		return s.Make
	case FacetModel:
		return s.Model
	case FacetYear:
		return s.Year
	case FacetCategory:
		return s.Category
	case FacetKeyword:
		return s.Keyword
	case FacetSKU:
		return s.SKU
	default:
		return ""
	}
}

// With returns a copy of the state with one facet replaced.
func (s FacetState) With(f Facet, value string) FacetState {
	switch f {
	case FacetMake:
		s.Make = value
	case FacetModel:
		s.Model = value
	case FacetYear:
		s.Year = value
	case FacetCategory:
		s.Category = value
	case FacetKeyword:
		s.Keyword = value
	case FacetSKU:
		s.SKU = value
	}
	return s
}

// IsEmpty returns true if no facet is set.
func (s FacetState) IsEmpty() bool {
	return s == FacetState{}
}

// Query builds the product query for the current state.
func (s FacetState) Query() ProductQuery {
	var q ProductQuery
	for _, f := range AllFacets() {
		if v := s.Get(f); v != "" {
			q.Params = append(q.Params, QueryParam{Facet: f, Value: v})
		}
	}
	return q
}
