package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/catalogserver"
)

var (
	fixtureAddr     string
	fixtureBasePath string
	fixtureFile     string
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Fixture catalog commands",
	Long:  `Commands for running a local catalog from fixture data.`,
}

var fixtureServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a fixture catalog over HTTP",
	Long: `Serve the catalog HTTP API from fixture data.

Without --file the built-in demo data is served. Point the other commands
at it with --catalog-url or catalog.base_url.

Examples:
  partfinder fixture serve
  partfinder fixture serve --addr :9000 --file parts.toml
  partfinder --catalog-url http://localhost:3042/api search --make Ford`,
	Args: cobra.NoArgs,
	RunE: runFixtureServe,
}

func init() {
	fixtureServeCmd.Flags().StringVar(&fixtureAddr, "addr", ":3042", "listen address")
	fixtureServeCmd.Flags().StringVar(&fixtureBasePath, "base-path", catalogserver.DefaultBasePath, "path the API is mounted under")
	fixtureServeCmd.Flags().StringVarP(&fixtureFile, "file", "f", "", "fixture TOML file (default: built-in demo data)")
	fixtureCmd.AddCommand(fixtureServeCmd)
	rootCmd.AddCommand(fixtureCmd)
}

func runFixtureServe(cmd *cobra.Command, _ []string) error {
	catalog, err := loadFixtureCatalog(fixtureFile)
	if err != nil {
		return err
	}

	server, err := catalogserver.New(catalog, fixtureBasePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fixture catalog listening on http://localhost%s%s\n", fixtureAddr, server.BasePath())
	return server.RunHTTP(cmd.Context(), fixtureAddr)
}

// loadFixtureCatalog returns the seeded catalog for "" or "seed",
// otherwise the catalog loaded from path.
func loadFixtureCatalog(path string) (*memory.Catalog, error) {
	if path == "" || path == FixtureSeed {
		return memory.NewSeeded(), nil
	}
	f, err := memory.LoadFixture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	return memory.New(f), nil
}

// FixtureSeed names the built-in demo data in --fixture and --file.
const FixtureSeed = "seed"
