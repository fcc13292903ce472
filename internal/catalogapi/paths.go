package catalogapi

import "net/url"

// Endpoint paths, relative to the catalog base URL.
const (
	PathCategories  = "/categories"
	PathMakes       = "/makes"
	PathModels      = "/models"
	PathYearsRange  = "/years-range"
	PathSuggestions = "/suggestions"
	PathProducts    = "/products"
)

// Query parameter names outside the facet set.
const (
	ParamTerm = "term"
	ParamMake = "make"
	ParamYear = "year"
)

// ProductPath returns the path of a single product.
func ProductPath(id string) string {
	return PathProducts + "/" + url.PathEscape(id)
}

// RequestIDHeader carries a fresh UUID on every client request.
const RequestIDHeader = "X-Request-ID"
