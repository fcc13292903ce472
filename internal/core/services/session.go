package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Ensure the session types implement the interfaces.
var (
	_ driven.CatalogService = (*SwappableCatalog)(nil)
	_ driven.ConfigWatcher  = (*CatalogReloader)(nil)
)

// SwappableCatalog forwards to a catalog that can be replaced while in use.
// Calls already in flight finish against the catalog they started with.
type SwappableCatalog struct {
	mu      sync.RWMutex
	current driven.CatalogService
}

// NewSwappableCatalog wraps catalog.
func NewSwappableCatalog(catalog driven.CatalogService) *SwappableCatalog {
	return &SwappableCatalog{current: catalog}
}

// Swap replaces the catalog used by subsequent calls.
func (s *SwappableCatalog) Swap(catalog driven.CatalogService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = catalog
}

// Current returns the catalog in use.
func (s *SwappableCatalog) Current() driven.CatalogService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SwappableCatalog) Categories(ctx context.Context) ([]string, error) {
	return s.Current().Categories(ctx)
}

func (s *SwappableCatalog) Makes(ctx context.Context, term string) ([]string, error) {
	return s.Current().Makes(ctx, term)
}

func (s *SwappableCatalog) Models(ctx context.Context, mk, year string) ([]string, error) {
	return s.Current().Models(ctx, mk, year)
}

func (s *SwappableCatalog) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	return s.Current().YearRange(ctx, mk)
}

func (s *SwappableCatalog) Suggestions(ctx context.Context, term string) ([]string, error) {
	return s.Current().Suggestions(ctx, term)
}

func (s *SwappableCatalog) Products(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	return s.Current().Products(ctx, query)
}

func (s *SwappableCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.Current().Product(ctx, id)
}

// CatalogBuilder creates a catalog client from settings.
type CatalogBuilder func(settings *domain.AppSettings) (driven.CatalogService, error)

// CatalogReloader rebuilds the catalog whenever the configuration changes.
type CatalogReloader struct {
	watcher  driven.ConfigWatcher
	settings driving.SettingsService
	build    CatalogBuilder
	catalog  *SwappableCatalog
}

// NewCatalogReloader creates a reloader that swaps catalog on every change
// reported by watcher.
func NewCatalogReloader(
	watcher driven.ConfigWatcher,
	settings driving.SettingsService,
	build CatalogBuilder,
	catalog *SwappableCatalog,
) *CatalogReloader {
	return &CatalogReloader{
		watcher:  watcher,
		settings: settings,
		build:    build,
		catalog:  catalog,
	}
}

// Reload rebuilds the catalog from the current settings.
// Invalid settings leave the previous catalog in place.
func (r *CatalogReloader) Reload() error {
	if err := r.settings.Validate(); err != nil {
		return err
	}
	settings, err := r.settings.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	catalog, err := r.build(settings)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	r.catalog.Swap(catalog)
	logger.Debug("Catalog rebuilt for %s", settings.Catalog.BaseURL)
	return nil
}

// Watch reloads the catalog on every configuration change and then calls
// onChange. Changes that fail to reload are logged and not reported.
func (r *CatalogReloader) Watch(ctx context.Context, onChange func()) error {
	if r.watcher == nil {
		<-ctx.Done()
		return nil
	}
	return r.watcher.Watch(ctx, func() {
		if err := r.Reload(); err != nil {
			logger.Warn("Keeping previous catalog settings: %v", err)
			return
		}
		if onChange != nil {
			onChange()
		}
	})
}

// ErrNoCatalog is returned by a controller factory without a catalog.
var ErrNoCatalog = errors.New("catalog not configured")

// NewControllerFactory returns a factory whose controllers read the term
// length and timeout from the settings current at creation.
func NewControllerFactory(catalog driven.CatalogService, settings driving.SettingsService) driving.ControllerFactory {
	return func() (driving.FacetController, error) {
		if catalog == nil {
			return nil, ErrNoCatalog
		}
		cfg := ControllerConfig{}
		if settings != nil {
			s, err := settings.Get()
			if err != nil {
				return nil, fmt.Errorf("read settings: %w", err)
			}
			cfg = ControllerConfigFrom(s)
		}
		return NewFacetController(catalog, cfg), nil
	}
}
