package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacetsCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range facetsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"categories", "makes", "models", "years"}, names)
}

func TestFacetsCategories_Normalised(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "Truck, Parts\n")
	assert.Contains(t, out, "Brakes\n")
	assert.NotContains(t, out, `\,`)
}

func TestFacetsMakes_SplitsGroups(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "makes", "gm")

	require.NoError(t, err)
	assert.Equal(t, "Chevrolet\nGMC\n", out)
}

func TestFacetsModels_WithYear(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "models", "Ford", "--year", "1996")

	require.NoError(t, err)
	assert.Equal(t, "F-150\n", out)
}

func TestFacetsModels_RequiresMake(t *testing.T) {
	defer setupTestServices()()

	_, err := execute(t, "facets", "models")

	assert.Error(t, err)
}

func TestFacetsModels_None(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "models", "Studebaker")

	require.NoError(t, err)
	assert.Equal(t, "No models.\n", out)
}

func TestFacetsYears(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "years", "Ford")
	require.NoError(t, err)
	assert.Equal(t, "1995-2010\n", out)

	out, err = execute(t, "facets", "years")
	require.NoError(t, err)
	assert.Equal(t, "1922-2024\n", out)
}

func TestFacetsYears_JSON(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "facets", "years", "Jeep", "--json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"minYear":1984,"maxYear":2017}`, out)
}

func TestFacets_NotConfigured(t *testing.T) {
	defer setupTestServices()()
	SetServices(nil)

	_, err := execute(t, "facets", "categories")

	assert.ErrorIs(t, err, errCatalogNotConfigured)
}
