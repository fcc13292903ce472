package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

var (
	suggestMake string
	suggestYear string
)

// errUnsupportedFacet is returned for typeahead on a facet without suggestions.
var errUnsupportedFacet = errors.New("suggestions are available for make, model and keyword")

var suggestCmd = &cobra.Command{
	Use:   "suggest <make|model|keyword> <term>",
	Short: "Show typeahead suggestions",
	Long: `Show the completions the search screen would offer for a partial term.

Model suggestions are scoped to --make (and --year when given). Terms
shorter than search.min_term_length produce no suggestions.`,
	Args: cobra.ExactArgs(2),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestMake, "make", "", "make to scope model suggestions")
	suggestCmd.Flags().StringVar(&suggestYear, "year", "", "year to scope model suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	facet, err := domain.ParseFacet(args[0])
	if err != nil {
		return err
	}
	if !facet.SupportsSuggestions() {
		return fmt.Errorf("%s: %w", facet, errUnsupportedFacet)
	}

	c, err := startSession()
	if err != nil {
		return err
	}
	if facet == domain.FacetModel {
		scope := domain.FacetState{Make: suggestMake, Year: suggestYear}
		if err := applyFacets(cmd, c, scope); err != nil {
			return err
		}
	}

	if err := services.Drive(cmd.Context(), c, c.Suggest(facet, args[1])...); err != nil {
		return err
	}

	suggestions := c.Suggestions(facet)
	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Println(s)
	}
	return nil
}
