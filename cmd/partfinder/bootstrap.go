package main

import (
	"fmt"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/rest"
	configfile "github.com/custodia-labs/partfinder-cli/internal/adapters/driven/config/file"
	configmem "github.com/custodia-labs/partfinder-cli/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// bootstrap wires the driven adapters to the core services for the
// parsed global flags.
//
// An unusable catalog configuration is not fatal: settings commands still
// work, and commands needing the catalog report it as not configured.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	var (
		store     driven.ConfigStore
		fileStore *configfile.ConfigStore
	)
	if opts.NoConfig {
		store = configmem.NewConfigStore()
	} else {
		fs, err := configfile.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		logger.Debug("Using config %s", fs.Path())
		store, fileStore = fs, fs
	}
	settings := services.NewSettingsService(store)

	build, err := catalogBuilder(opts)
	if err != nil {
		return nil, err
	}

	current, err := settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	catalog, err := build(current)
	if err != nil {
		logger.Warn("Catalog unavailable: %v", err)
		return &cli.Services{Settings: settings}, nil
	}

	swappable := services.NewSwappableCatalog(catalog)
	s := &cli.Services{
		Browse:        services.NewBrowseService(swappable),
		Settings:      settings,
		NewController: services.NewControllerFactory(swappable, settings),
	}
	if fileStore != nil {
		s.Watcher = services.NewCatalogReloader(fileStore, settings, build, swappable)
	}
	return s, nil
}

// catalogBuilder returns the function that creates the catalog from
// settings. A fixture catalog ignores the catalog settings.
func catalogBuilder(opts cli.Options) (services.CatalogBuilder, error) {
	if opts.Fixture != "" {
		fixture, err := openFixture(opts.Fixture)
		if err != nil {
			return nil, err
		}
		return func(*domain.AppSettings) (driven.CatalogService, error) {
			return fixture, nil
		}, nil
	}

	return func(s *domain.AppSettings) (driven.CatalogService, error) {
		cfg := rest.ConfigFromSettings(s.Catalog)
		if opts.CatalogURL != "" {
			cfg.BaseURL = opts.CatalogURL
		}
		return rest.New(cfg)
	}, nil
}

func openFixture(path string) (*memory.Catalog, error) {
	if path == cli.FixtureSeed {
		return memory.NewSeeded(), nil
	}
	f, err := memory.LoadFixture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	return memory.New(f), nil
}
