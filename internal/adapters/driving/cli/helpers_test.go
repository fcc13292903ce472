package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/memory"
	configmem "github.com/custodia-labs/partfinder-cli/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

// setupTestServices installs services backed by the seeded fixture catalog
// and an in-memory config store. It returns a cleanup function.
func setupTestServices() func() {
	catalog := memory.NewSeeded()
	settings := services.NewSettingsService(configmem.NewConfigStore())

	oldBootstrap := bootstrap
	bootstrap = nil
	SetServices(&Services{
		Browse:        services.NewBrowseService(catalog),
		Settings:      settings,
		NewController: services.NewControllerFactory(catalog, settings),
	})

	return func() {
		bootstrap = oldBootstrap
		SetServices(nil)
	}
}

// resetFlags restores every flag in the tree to its default so values do
// not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
