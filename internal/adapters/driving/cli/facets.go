package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	facetsJSON      bool
	facetModelsYear string
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List facet options",
	Long: `List the values the catalog offers for a facet.

Categories are shown normalised (escaped commas resolved) and grouped makes
are split into individual makes.`,
}

var facetsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Args:  cobra.NoArgs,
	RunE:  runFacetsCategories,
}

var facetsMakesCmd = &cobra.Command{
	Use:   "makes [term]",
	Short: "List vehicle makes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFacetsMakes,
}

var facetsModelsCmd = &cobra.Command{
	Use:   "models <make>",
	Short: "List models for a make",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacetsModels,
}

var facetsYearsCmd = &cobra.Command{
	Use:   "years [make]",
	Short: "Show the model-year range for a make",
	Long: `Show the model-year range for a make.

Without a make the default range is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacetsYears,
}

func init() {
	facetsCmd.PersistentFlags().BoolVar(&facetsJSON, "json", false, "output as JSON")
	facetsModelsCmd.Flags().StringVar(&facetModelsYear, "year", "", "only models built in this year")

	facetsCmd.AddCommand(facetsCategoriesCmd)
	facetsCmd.AddCommand(facetsMakesCmd)
	facetsCmd.AddCommand(facetsModelsCmd)
	facetsCmd.AddCommand(facetsYearsCmd)
	rootCmd.AddCommand(facetsCmd)
}

func runFacetsCategories(cmd *cobra.Command, _ []string) error {
	if browseService == nil {
		return errCatalogNotConfigured
	}
	categories, err := browseService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return outputList(cmd, categories, "No categories.")
}

func runFacetsMakes(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errCatalogNotConfigured
	}
	term := ""
	if len(args) == 1 {
		term = args[0]
	}
	makes, err := browseService.Makes(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("failed to list makes: %w", err)
	}
	return outputList(cmd, makes, "No makes.")
}

func runFacetsModels(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errCatalogNotConfigured
	}
	models, err := browseService.Models(cmd.Context(), args[0], facetModelsYear)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	return outputList(cmd, models, "No models.")
}

func runFacetsYears(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errCatalogNotConfigured
	}
	mk := ""
	if len(args) == 1 {
		mk = args[0]
	}
	yr, err := browseService.YearRange(cmd.Context(), mk)
	if err != nil {
		return fmt.Errorf("failed to get year range: %w", err)
	}
	if facetsJSON {
		return outputJSON(cmd, map[string]int{"minYear": yr.Min, "maxYear": yr.Max})
	}
	cmd.Println(yr.String())
	return nil
}

func outputList(cmd *cobra.Command, values []string, empty string) error {
	if facetsJSON {
		if values == nil {
			values = []string{}
		}
		return outputJSON(cmd, values)
	}
	if len(values) == 0 {
		cmd.Println(empty)
		return nil
	}
	for _, v := range values {
		cmd.Println(v)
	}
	return nil
}
