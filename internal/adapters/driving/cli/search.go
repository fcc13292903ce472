package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

var (
	searchFacets domain.FacetState
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search the catalog for parts",
	Long: `Searches the catalog for products matching the given facets.

The make is applied first so that the year is checked against the make's
production years and the model against the make's model list before the
search is sent. Empty facets are left out of the query.

Examples:
  partfinder search --make Ford --year 2005 brake
  partfinder search --make Ford --model Ranger --category "Truck, Parts"
  partfinder search --sku BRK-1001 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.StringVar(&searchFacets.Make, "make", "", "vehicle make")
	flags.StringVar(&searchFacets.Model, "model", "", "vehicle model (requires --make)")
	flags.StringVar(&searchFacets.Year, "year", "", "model year")
	flags.StringVar(&searchFacets.Category, "category", "", "product category")
	flags.StringVar(&searchFacets.Keyword, "keyword", "", "free-text keyword")
	flags.StringVar(&searchFacets.SKU, "sku", "", "stock keeping unit")
	flags.BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	facets := searchFacets
	if len(args) == 1 {
		facets.Keyword = args[0]
	}

	c, err := startSession()
	if err != nil {
		return err
	}
	if err := applyFacets(cmd, c, facets); err != nil {
		return err
	}

	if err := services.Drive(cmd.Context(), c, c.Search()); err != nil {
		return err
	}
	if msg := c.Message(); msg != "" {
		logger.Debug("search %s failed: %v", c.Query().Encode(), c.SearchError())
		return errors.New(msg)
	}

	if searchJSON {
		return outputJSON(cmd, c.Results())
	}
	outputProductTable(cmd, c.Results())
	return nil
}

// applyFacets sets facets in services.ApplyOrder and explains a rejected
// value in terms of the current make.
func applyFacets(cmd *cobra.Command, c driving.FacetController, facets domain.FacetState) error {
	err := services.ApplyFacets(cmd.Context(), c, facets)
	var facetErr *services.FacetError
	if errors.As(err, &facetErr) {
		return describeFacetError(c, facetErr.Facet, facetErr.Value, facetErr.Err)
	}
	return err
}

func describeFacetError(c driving.FacetController, f domain.Facet, value string, err error) error {
	switch {
	case errors.Is(err, domain.ErrYearOutOfRange):
		return fmt.Errorf("year %s is outside %s for %s", value, c.YearRange(), c.State().Make)
	case errors.Is(err, domain.ErrModelNotAvailable):
		if c.State().Make == "" {
			return fmt.Errorf("model %q requires --make", value)
		}
		if c.State().Year != "" {
			return fmt.Errorf("model %q is not available for %s %s", value, c.State().Make, c.State().Year)
		}
		return fmt.Errorf("model %q is not available for %s", value, c.State().Make)
	default:
		return fmt.Errorf("invalid %s %q: %w", f, value, err)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputProductTable(cmd *cobra.Command, products []domain.Product) {
	if len(products) == 0 {
		cmd.Println("No products found.")
		return
	}

	cmd.Printf("Found %d product(s):\n", len(products))
	cmd.Println()
	for i := range products {
		p := products[i]
		cmd.Printf("  [%d] %s\n", i+1, p.Name)
		cmd.Printf("      ID: %s  SKU: %s  Price: %s  %s\n", p.ID, p.SKU, p.Price, stockLabel(p.InStock))
		if p.YearStart > 0 || p.YearEnd > 0 {
			cmd.Printf("      Fits: %d-%d\n", p.YearStart, p.YearEnd)
		}
	}
}

func stockLabel(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "out of stock"
}
