package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/validation"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyCatalogBaseURL      = "catalog.base_url"
	KeyCatalogTimeout      = "catalog.timeout_seconds"
	KeyCatalogRPS          = "catalog.requests_per_second"
	KeyCatalogBurst        = "catalog.burst"
	KeySearchMinTermLength = "search.min_term_length"
)

// envOverrides are environment variables that take precedence over the
// config file. Unset variables leave the stored value in place.
type envOverrides struct {
	CatalogURL     string `env:"PARTFINDER_CATALOG_URL"`
	CatalogTimeout int    `env:"PARTFINDER_CATALOG_TIMEOUT"`
	MinTermLength  int    `env:"PARTFINDER_MIN_TERM_LENGTH"`
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings with environment overrides.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if overrides.CatalogURL != "" {
		settings.Catalog.BaseURL = overrides.CatalogURL
	}
	if overrides.CatalogTimeout > 0 {
		settings.Catalog.TimeoutSeconds = overrides.CatalogTimeout
	}
	if overrides.MinTermLength > 0 {
		settings.Search.MinTermLength = overrides.MinTermLength
	}

	return settings, nil
}

// stored returns the persisted settings, falling back to defaults per key.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	return &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			BaseURL:           s.getString(KeyCatalogBaseURL, defaults.Catalog.BaseURL),
			TimeoutSeconds:    s.getInt(KeyCatalogTimeout, defaults.Catalog.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyCatalogRPS, defaults.Catalog.RequestsPerSecond),
			Burst:             s.getInt(KeyCatalogBurst, defaults.Catalog.Burst),
		},
		Search: domain.SearchSettings{
			MinTermLength: s.getInt(KeySearchMinTermLength, defaults.Search.MinTermLength),
		},
	}
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validation.Validate(settings); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.configStore.Set(KeyCatalogBaseURL, settings.Catalog.BaseURL); err != nil {
		return fmt.Errorf("save catalog base_url: %w", err)
	}
	if err := s.configStore.Set(KeyCatalogTimeout, settings.Catalog.TimeoutSeconds); err != nil {
		return fmt.Errorf("save catalog timeout: %w", err)
	}
	if err := s.configStore.Set(KeyCatalogRPS, settings.Catalog.RequestsPerSecond); err != nil {
		return fmt.Errorf("save catalog requests_per_second: %w", err)
	}
	if err := s.configStore.Set(KeyCatalogBurst, settings.Catalog.Burst); err != nil {
		return fmt.Errorf("save catalog burst: %w", err)
	}
	if err := s.configStore.Set(KeySearchMinTermLength, settings.Search.MinTermLength); err != nil {
		return fmt.Errorf("save search min_term_length: %w", err)
	}

	return nil
}

// Set parses and stores a single value by its dotted key.
func (s *SettingsService) Set(key, value string) error {
	settings := s.stored()
	value = strings.TrimSpace(value)

	switch key {
	case KeyCatalogBaseURL:
		settings.Catalog.BaseURL = strings.TrimRight(value, "/")
	case KeyCatalogTimeout:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Catalog.TimeoutSeconds = n
	case KeyCatalogRPS:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Catalog.RequestsPerSecond = f
	case KeyCatalogBurst:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Catalog.Burst = n
	case KeySearchMinTermLength:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.Search.MinTermLength = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyCatalogBaseURL,
		KeyCatalogTimeout,
		KeyCatalogRPS,
		KeyCatalogBurst,
		KeySearchMinTermLength,
	}
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validation.Validate(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return *domain.DefaultAppSettings()
}

// SettingValue formats the value of key the way Set parses it.
// Unknown keys yield "".
func SettingValue(s *domain.AppSettings, key string) string {
	switch key {
	case KeyCatalogBaseURL:
		return s.Catalog.BaseURL
	case KeyCatalogTimeout:
		return strconv.Itoa(s.Catalog.TimeoutSeconds)
	case KeyCatalogRPS:
		return strconv.FormatFloat(s.Catalog.RequestsPerSecond, 'g', -1, 64)
	case KeyCatalogBurst:
		return strconv.Itoa(s.Catalog.Burst)
	case KeySearchMinTermLength:
		return strconv.Itoa(s.Search.MinTermLength)
	default:
		return ""
	}
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
