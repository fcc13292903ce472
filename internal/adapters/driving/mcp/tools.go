package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Tool names.
const (
	toolSearchProducts   = "search_products"
	toolListFacetOptions = "list_facet_options"
	toolGetProduct       = "get_product"
)

const defaultSearchLimit = 20

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Make     string `json:"make,omitempty" jsonschema:"vehicle make, e.g. Ford"`
	Model    string `json:"model,omitempty" jsonschema:"vehicle model; requires make"`
	Year     string `json:"year,omitempty" jsonschema:"model year; checked against the make's production years"`
	Category string `json:"category,omitempty" jsonschema:"product category as listed by list_facet_options"`
	Keyword  string `json:"keyword,omitempty" jsonschema:"free-text keyword"`
	SKU      string `json:"sku,omitempty" jsonschema:"stock keeping unit"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of products to return (default 20)"`
}

func (in SearchInput) facets() domain.FacetState {
	return domain.FacetState{
		Make:     in.Make,
		Model:    in.Model,
		Year:     in.Year,
		Category: in.Category,
		Keyword:  in.Keyword,
		SKU:      in.SKU,
	}
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Query    string          `json:"query"`
	Count    int             `json:"count"`
	Products []ProductOutput `json:"products"`
}

// ProductOutput is a product as reported to MCP clients.
type ProductOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        string   `json:"price,omitempty"`
	RegularPrice string   `json:"regular_price,omitempty"`
	SKU          string   `json:"sku,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	InStock      bool     `json:"in_stock"`
	Weight       string   `json:"weight,omitempty"`
	Dimensions   string   `json:"dimensions,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	YearStart    int      `json:"year_start,omitempty"`
	YearEnd      int      `json:"year_end,omitempty"`
}

func productOutput(p *domain.Product) ProductOutput {
	return ProductOutput{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		SKU:          p.SKU,
		Categories:   p.CategoryList(),
		InStock:      p.InStock,
		Weight:       p.Weight,
		Dimensions:   p.Dimensions(),
		ImageURL:     p.ImageURL,
		YearStart:    p.YearStart,
		YearEnd:      p.YearEnd,
	}
}

// OptionsInput is the input schema for the list_facet_options tool.
type OptionsInput struct {
	Facet string `json:"facet" jsonschema:"one of make, model, year, category"`
	Make  string `json:"make,omitempty" jsonschema:"make scoping the model and year options"`
	Year  string `json:"year,omitempty" jsonschema:"year narrowing the model options"`
	Term  string `json:"term,omitempty" jsonschema:"filter for the make options"`
}

// OptionsOutput is the output schema for the list_facet_options tool.
type OptionsOutput struct {
	Facet  string   `json:"facet"`
	Values []string `json:"values"`
}

// ProductInput is the input schema for the get_product tool.
type ProductInput struct {
	ID string `json:"id" jsonschema:"product ID as returned by search_products"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolSearchProducts,
		Description: "Search vehicle parts by make, model, year, category, keyword and SKU",
	}, s.handleSearchProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolListFacetOptions,
		Description: "List the valid values of a search facet",
	}, s.handleListFacetOptions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolGetProduct,
		Description: "Get the full record of one product",
	}, s.handleGetProduct)
}

// handleSearchProducts runs one search session. Facets are applied make
// first, then year, then model, so each is checked against the ones before.
func (s *Server) handleSearchProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (_ *mcp.CallToolResult, _ SearchOutput, err error) {
	defer func() { observe(toolSearchProducts, err) }()

	c, err := s.ports.NewController()
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("starting search session: %w", err)
	}
	if err := applyFacets(ctx, c, input.facets()); err != nil {
		return nil, SearchOutput{}, err
	}
	if err := services.Drive(ctx, c, c.Search()); err != nil {
		return nil, SearchOutput{}, err
	}
	if msg := c.Message(); msg != "" {
		logger.Warn("MCP search %s failed: %v", c.Query().Encode(), c.SearchError())
		return nil, SearchOutput{}, errors.New(msg)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	results := c.Results()
	output := SearchOutput{
		Query:    c.Query().Encode(),
		Count:    len(results),
		Products: make([]ProductOutput, 0, min(limit, len(results))),
	}
	for i := range results {
		if i == limit {
			break
		}
		output.Products = append(output.Products, productOutput(&results[i]))
	}
	return nil, output, nil
}

func applyFacets(ctx context.Context, c driving.FacetController, facets domain.FacetState) error {
	err := services.ApplyFacets(ctx, c, facets)
	var rejected *services.FacetError
	if errors.As(err, &rejected) {
		return facetError(c, rejected.Facet, rejected.Value, rejected.Err)
	}
	return err
}

func facetError(c driving.FacetController, f domain.Facet, value string, err error) error {
	switch {
	case errors.Is(err, domain.ErrYearOutOfRange):
		return fmt.Errorf("year %s is outside %s for %s: %w", value, c.YearRange(), c.State().Make, err)
	case errors.Is(err, domain.ErrModelNotAvailable) && c.State().Make == "":
		return fmt.Errorf("model %q requires a make: %w", value, err)
	case errors.Is(err, domain.ErrModelNotAvailable) && c.State().Year != "":
		return fmt.Errorf("model %q is not available for %s %s: %w", value, c.State().Make, c.State().Year, err)
	case errors.Is(err, domain.ErrModelNotAvailable):
		return fmt.Errorf("model %q is not available for %s: %w", value, c.State().Make, err)
	default:
		return fmt.Errorf("invalid %s %q: %w", f, value, err)
	}
}

func (s *Server) handleListFacetOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OptionsInput,
) (_ *mcp.CallToolResult, _ OptionsOutput, err error) {
	defer func() { observe(toolListFacetOptions, err) }()

	if s.ports.Browse == nil {
		return nil, OptionsOutput{}, ErrNoBrowseService
	}
	facet, err := domain.ParseFacet(input.Facet)
	if err != nil {
		return nil, OptionsOutput{}, err
	}

	var values []string
	switch facet {
	case domain.FacetMake:
		values, err = s.ports.Browse.Makes(ctx, input.Term)
	case domain.FacetModel:
		if strings.TrimSpace(input.Make) == "" {
			return nil, OptionsOutput{}, fmt.Errorf("model options require a make: %w", domain.ErrInvalidInput)
		}
		values, err = s.ports.Browse.Models(ctx, input.Make, input.Year)
	case domain.FacetYear:
		var r domain.YearRange
		r, err = s.ports.Browse.YearRange(ctx, input.Make)
		for _, y := range r.Years() {
			values = append(values, strconv.Itoa(y))
		}
	case domain.FacetCategory:
		values, err = s.ports.Browse.Categories(ctx)
	case domain.FacetKeyword, domain.FacetSKU:
		return nil, OptionsOutput{}, fmt.Errorf("%s has no option list: %w", facet, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, OptionsOutput{}, fmt.Errorf("listing %s options: %w", facet, err)
	}
	if values == nil {
		values = []string{}
	}
	return nil, OptionsOutput{Facet: facet.String(), Values: values}, nil
}

func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProductInput,
) (_ *mcp.CallToolResult, _ ProductOutput, err error) {
	defer func() { observe(toolGetProduct, err) }()

	if s.ports.Browse == nil {
		return nil, ProductOutput{}, ErrNoBrowseService
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, ProductOutput{}, fmt.Errorf("product id is required: %w", domain.ErrInvalidInput)
	}

	p, err := s.ports.Browse.Product(ctx, id)
	if err != nil {
		return nil, ProductOutput{}, fmt.Errorf("getting product %s: %w", id, err)
	}
	return nil, productOutput(p), nil
}
