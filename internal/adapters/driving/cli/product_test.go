package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

func TestProductCmd_Detail(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "product", "1001")

	require.NoError(t, err)
	assert.Contains(t, out, "Ceramic Front Brake Pad Set\n")
	assert.Contains(t, out, "BRK-1001")
	assert.Contains(t, out, "Regular price:")
	assert.Contains(t, out, "Brakes | Truck, Parts")
	assert.Contains(t, out, "1997-2010")
	assert.Contains(t, out, "20 x 15 x 6")
	assert.Contains(t, out, "Low-dust ceramic pads")
}

func TestProductCmd_JSON(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "product", "3001", "--json")

	require.NoError(t, err)
	var p domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "LED Headlight Assembly", p.Name)
}

func TestProductCmd_NotFound(t *testing.T) {
	defer setupTestServices()()

	_, err := execute(t, "product", "9999")

	require.Error(t, err)
	assert.Equal(t, "product 9999 not found", err.Error())
}

func TestProductCmd_RequiresID(t *testing.T) {
	defer setupTestServices()()

	_, err := execute(t, "product")

	assert.Error(t, err)
}
