package catalogapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

func TestProduct_DecodeMixedScalars(t *testing.T) {
	payload := `{
		"ID": 42,
		"Name": "Ceramic Brake Pad",
		"Price": 19.99,
		"Regular_price": "24.99",
		"SKU": "BRK-42",
		"Categories": "Brakes\\, Pads, Accessories",
		"In_stock": 1,
		"Weight": "1.2",
		"Length": 10,
		"Width": null,
		"Images": "https://img.test/a.jpg, https://img.test/b.jpg",
		"Meta_year_start": "1995",
		"Meta_year_end": 2010
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	got := p.ToDomain()

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "19.99", got.Price)
	assert.Equal(t, "24.99", got.RegularPrice)
	assert.True(t, got.InStock)
	assert.Equal(t, "10", got.Length)
	assert.Equal(t, "", got.Width)
	assert.Equal(t, "https://img.test/a.jpg", got.ImageURL)
	assert.Equal(t, 1995, got.YearStart)
	assert.Equal(t, 2010, got.YearEnd)
	assert.Equal(t, []string{"Brakes, Pads", "Accessories"}, got.CategoryList())
}

func TestProduct_ImageURLPreferred(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"ID":"1","Images":"a.jpg","Image_url":"b.jpg"}`), &p))

	assert.Equal(t, "b.jpg", p.ToDomain().ImageURL)
}

func TestFlexBool(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"yes"`, true},
		{`"instock"`, true},
		{`"outofstock"`, false},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var b FlexBool
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.Equal(t, tt.expected, bool(b))
		})
	}
}

func TestFlexInt_Invalid(t *testing.T) {
	var n FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &n))

	require.NoError(t, json.Unmarshal([]byte(`""`), &n))
	assert.Equal(t, FlexInt(0), n)
}

func TestProduct_EncodeDecodePreservesDomainFields(t *testing.T) {
	original := domain.Product{
		ID:        "7",
		Name:      "Oil Filter",
		SKU:       "FLT-7",
		InStock:   true,
		ImageURL:  "https://img.test/7.jpg",
		YearStart: 2001,
		YearEnd:   2008,
	}

	data, err := json.Marshal(ProductFromDomain(original))
	require.NoError(t, err)

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded.ToDomain())
}

func TestYearRange_Decode(t *testing.T) {
	var r YearRange
	require.NoError(t, json.Unmarshal([]byte(`{"minYear":"1995","maxYear":2010}`), &r))

	assert.Equal(t, domain.YearRange{Min: 1995, Max: 2010}, r.ToDomain())
}

func TestProductPath(t *testing.T) {
	assert.Equal(t, "/products/42", ProductPath("42"))
	assert.Equal(t, "/products/a%2Fb", ProductPath("a/b"))
}
