package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_CategoryList(t *testing.T) {
	p := Product{Categories: `Truck\, Parts, Accessories`}

	assert.Equal(t, []string{"Truck, Parts", "Accessories"}, p.CategoryList())
}

func TestProduct_Dimensions(t *testing.T) {
	assert.Equal(t, "", Product{}.Dimensions())
	assert.Equal(t, "10 x 5 x 2", Product{Length: "10", Width: "5", Height: "2"}.Dimensions())
}

func TestSearchResult_Empty(t *testing.T) {
	assert.True(t, SearchResult{}.IsEmpty())
	r := SearchResult{Products: []Product{{ID: "1"}}}
	assert.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.Count())
}
