// Package cli provides the cobra command tree for partfinder.
//
// Commands talk to the core through driving ports only. The composition
// root installs a Bootstrap that turns the global flags into services;
// tests install services directly with SetServices.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// version is set by the composition root.
var version = "dev"

// Options are the values of the global flags.
type Options struct {
	// Verbose enables debug logging on stderr.
	Verbose bool

	// CatalogURL overrides catalog.base_url for this invocation.
	CatalogURL string

	// Fixture serves lookups from a fixture file instead of the catalog API.
	// The value "seed" selects the built-in demo data.
	Fixture string

	// ConfigDir overrides the directory holding config.toml.
	ConfigDir string

	// NoConfig ignores the config file and keeps settings in memory.
	NoConfig bool
}

// Services holds the driving ports used by the commands.
type Services struct {
	Browse        driving.BrowseService
	Settings      driving.SettingsService
	NewController driving.ControllerFactory

	// Watcher is optional. Long-running commands use it to follow config edits.
	Watcher driven.ConfigWatcher
}

// Bootstrap builds the services for the parsed global flags.
type Bootstrap func(opts Options) (*Services, error)

var (
	globalOpts Options
	bootstrap  Bootstrap

	browseService   driving.BrowseService
	settingsService driving.SettingsService
	newController   driving.ControllerFactory
	configWatcher   driven.ConfigWatcher
)

// errCatalogNotConfigured is returned by commands that need the catalog
// when no catalog could be built.
var errCatalogNotConfigured = errors.New("catalog not configured (check `partfinder settings show`)")

var rootCmd = &cobra.Command{
	Use:   "partfinder",
	Short: "Find vehicle parts by make, model and year",
	Long: `partfinder narrows a remote parts catalog by make, model, year,
category, keyword and SKU, then lists the matching products.

Run "partfinder tui" for the interactive search screen, or use the
search, facets and product commands from scripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(globalOpts.Verbose)
		if bootstrap == nil {
			return nil
		}
		services, err := bootstrap(globalOpts)
		if err != nil {
			return err
		}
		SetServices(services)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&globalOpts.CatalogURL, "catalog-url", "", "catalog API base URL (overrides settings)")
	flags.StringVar(&globalOpts.Fixture, "fixture", "", `answer from a fixture TOML file ("seed" for demo data)`)
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "directory holding config.toml (default ~/.partfinder)")
	flags.BoolVar(&globalOpts.NoConfig, "no-config", false, "ignore the config file")
}

// SetBootstrap installs the function that builds services from global flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	browseService = s.Browse
	settingsService = s.Settings
	newController = s.NewController
	configWatcher = s.Watcher
}

// SetVersion sets the version reported by `partfinder version`.
func SetVersion(v string) {
	version = v
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// startSession creates a controller, failing if no catalog is available.
func startSession() (driving.FacetController, error) {
	if newController == nil {
		return nil, errCatalogNotConfigured
	}
	return newController()
}

var errSettingsNotConfigured = errors.New("settings service not configured")
