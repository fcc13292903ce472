package domain

import "time"

// Default settings values.
const (
	DefaultCatalogBaseURL    = "http://localhost:3042/api"
	DefaultTimeoutSeconds    = 10
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 20
	DefaultMinTermLength     = 2
)

// CatalogSettings configures the connection to the catalog service.
type CatalogSettings struct {
	// BaseURL is the catalog API root, e.g. http://localhost:3042/api.
	BaseURL string `validate:"required,url"`

	// TimeoutSeconds bounds every catalog request.
	TimeoutSeconds int `validate:"gte=1,lte=300"`

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64 `validate:"gte=0"`

	// Burst is the number of requests allowed above the sustained rate.
	Burst int `validate:"gte=1"`
}

// Timeout returns the per-request timeout.
func (c CatalogSettings) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchSettings holds typeahead behaviour configuration.
type SearchSettings struct {
	// MinTermLength is the number of characters needed before a suggestion
	// lookup is issued.
	MinTermLength int `validate:"gte=1,lte=10"`
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Catalog CatalogSettings
	Search  SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Catalog: CatalogSettings{
			BaseURL:           DefaultCatalogBaseURL,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Search: SearchSettings{
			MinTermLength: DefaultMinTermLength,
		},
	}
}
