package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for partfinder resources.
	uriScheme = "partfinder://"

	categoriesURI = uriScheme + "categories"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         categoriesURI,
		Name:        "categories",
		Description: "Normalised list of product categories",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "product",
		Description: "Full record of a single product",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleCategoriesResource returns the category option list.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Browse == nil {
		return jsonResource(req.Params.URI, []string{})
	}

	categories, err := s.ports.Browse.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return jsonResource(req.Params.URI, categories)
}

// handleProductResource returns one product as JSON.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Browse == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractProductID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Browse.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %s: %w", id, err)
	}
	return jsonResource(req.Params.URI, productOutput(p))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProductID extracts the ID from a URI like partfinder://products/{productId}.
func extractProductID(uri string) string {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
