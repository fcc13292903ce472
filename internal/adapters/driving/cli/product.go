package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

var productJSON bool

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	productCmd.Flags().BoolVar(&productJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	if browseService == nil {
		return errCatalogNotConfigured
	}

	product, err := browseService.Product(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("product %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	if productJSON {
		return outputJSON(cmd, product)
	}
	outputProductDetail(cmd, product)
	return nil
}

func outputProductDetail(cmd *cobra.Command, p *domain.Product) {
	cmd.Println(p.Name)
	cmd.Println(strings.Repeat("=", len(p.Name)))
	cmd.Println()

	field := func(label, value string) {
		if value != "" {
			cmd.Printf("  %-14s %s\n", label+":", value)
		}
	}
	field("ID", p.ID)
	field("SKU", p.SKU)
	field("Price", p.Price)
	if p.RegularPrice != "" && p.RegularPrice != p.Price {
		field("Regular price", p.RegularPrice)
	}
	field("Stock", stockLabel(p.InStock))
	field("Categories", strings.Join(p.CategoryList(), " | "))
	if p.YearStart > 0 || p.YearEnd > 0 {
		field("Fits", fmt.Sprintf("%d-%d", p.YearStart, p.YearEnd))
	}
	field("Weight", p.Weight)
	field("Dimensions", p.Dimensions())
	field("Image", p.ImageURL)

	if p.Description != "" {
		cmd.Println()
		cmd.Println(p.Description)
	}
}
