package mcp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

// brokenSearch serves the seeded catalog but fails every product query.
type brokenSearch struct {
	*memory.Catalog
}

func (brokenSearch) Products(context.Context, domain.ProductQuery) ([]domain.Product, error) {
	return nil, domain.ErrNetworkFailure
}

func portsFor(catalog driven.CatalogService) *Ports {
	return &Ports{
		NewController: services.NewControllerFactory(catalog, nil),
		Browse:        services.NewBrowseService(catalog),
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(portsFor(memory.NewSeeded()))
	require.NoError(t, err)
	return server
}

func TestNewServer(t *testing.T) {
	t.Run("missing controller factory returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingController)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(portsFor(memory.NewSeeded()))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingController)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingController)

	ports := portsFor(memory.NewSeeded())
	ports.Browse = nil
	assert.NoError(t, ports.Validate(), "browse service is optional")
}

func TestServer_HandlerServesMetrics(t *testing.T) {
	server := newTestServer(t)
	_, _, err := server.handleGetProduct(context.Background(), nil, ProductInput{ID: "1001"})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "partfinder_mcp_tool_calls_total")
}
