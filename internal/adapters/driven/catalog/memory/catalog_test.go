package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

func TestNewSeeded(t *testing.T) {
	c := NewSeeded()
	ctx := context.Background()

	makes, err := c.Makes(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ford", "Chevrolet, GMC", "Dodge", "Jeep", "Toyota"}, makes)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, domain.NormaliseCategories(cats), "Truck, Parts")
}

func TestCatalog_MakesFilter(t *testing.T) {
	c := NewSeeded()

	got, err := c.Makes(context.Background(), "gm")

	require.NoError(t, err)
	assert.Equal(t, []string{"Chevrolet, GMC"}, got)
}

func TestCatalog_Models(t *testing.T) {
	c := NewSeeded()
	ctx := context.Background()

	all, err := c.Models(ctx, "ford", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"F-150", "Focus", "Ranger"}, all)

	in1996, err := c.Models(ctx, "Ford", "1996")
	require.NoError(t, err)
	assert.Equal(t, []string{"F-150"}, in1996)

	grouped, err := c.Models(ctx, "GMC", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sierra 1500", "Silverado 1500"}, grouped)

	none, err := c.Models(ctx, "Studebaker", "")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = c.Models(ctx, "Ford", "soon")
	assert.True(t, errors.Is(err, domain.ErrServiceError))
}

func TestCatalog_YearRange(t *testing.T) {
	c := NewSeeded()
	ctx := context.Background()

	r, err := c.YearRange(ctx, "Ford")
	require.NoError(t, err)
	assert.Equal(t, domain.YearRange{Min: 1995, Max: 2010}, r)

	r, err = c.YearRange(ctx, "Studebaker")
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}

func TestCatalog_Suggestions(t *testing.T) {
	c := NewSeeded()

	got, err := c.Suggestions(context.Background(), "brake")

	require.NoError(t, err)
	assert.Equal(t, []string{"Ceramic Front Brake Pad Set", "Slotted Brake Rotor", "Brake Caliper Bracket"}, got)
}

func TestCatalog_Products(t *testing.T) {
	c := NewSeeded()

	tests := []struct {
		name     string
		state    domain.FacetState
		expected []string
	}{
		{"no filter", domain.FacetState{}, []string{"1001", "1002", "1003", "2001", "2002", "3001", "3002", "4001", "4002", "5001"}},
		{"make", domain.FacetState{Make: "Ford"}, []string{"1001", "2001", "2002", "4001", "5001"}},
		{"make and model", domain.FacetState{Make: "Ford", Model: "Focus"}, []string{"2001", "2002", "5001"}},
		{"grouped make", domain.FacetState{Make: "GMC"}, []string{"1002", "5001"}},
		{"year", domain.FacetState{Make: "Ford", Year: "1996"}, []string{"2001", "4001", "5001"}},
		{"category with escaped comma", domain.FacetState{Category: "Truck, Parts"}, []string{"1001", "3002", "4001"}},
		{"keyword", domain.FacetState{Keyword: "BRAKE"}, []string{"1001", "1002", "1003"}},
		{"sku", domain.FacetState{SKU: "flt-2002"}, []string{"2002"}},
		{"no match", domain.FacetState{Make: "Jeep", Keyword: "rotor"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Products(context.Background(), tt.state.Query())
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if tt.expected == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCatalog_Product(t *testing.T) {
	c := NewSeeded()
	ctx := context.Background()

	p, err := c.Product(ctx, "3001")
	require.NoError(t, err)
	assert.Equal(t, "LED Headlight Assembly", p.Name)
	assert.Equal(t, "60 x 35 x 30", p.Dimensions())

	_, err = c.Product(ctx, "9999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCatalog_CancelledContext(t *testing.T) {
	c := NewSeeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Categories(ctx)

	assert.True(t, errors.Is(err, domain.ErrNetworkFailure))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := []byte(`
[[vehicles]]
make = "Saab"
model = "900"
year_start = 1978
year_end = 1998

[[products]]
id = "s1"
name = "Saab Spark Plug"
categories = 'Ignition\, Engine'
fits = [{ make = "Saab", model = "900" }]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	c := New(f)

	r, err := c.YearRange(context.Background(), "Saab")
	require.NoError(t, err)
	assert.Equal(t, domain.YearRange{Min: 1978, Max: 1998}, r)

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ignition, Engine"}, domain.NormaliseCategories(cats))
}

func TestParseFixture_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", `[[products]`},
		{"missing id", "[[products]]\nname = \"x\""},
		{"duplicate id", "[[products]]\nid = \"a\"\n[[products]]\nid = \"a\""},
		{"inverted years", "[[vehicles]]\nmake = \"A\"\nmodel = \"B\"\nyear_start = 2000\nyear_end = 1990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCatalog_Replace(t *testing.T) {
	c := NewSeeded()

	c.Replace(&Fixture{})

	makes, err := c.Makes(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, makes)
}
