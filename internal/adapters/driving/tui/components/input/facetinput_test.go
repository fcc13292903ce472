package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

func typeRunes(f *FacetInput, s string) bool {
	changed := false
	for _, r := range s {
		c, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		changed = changed || c
	}
	return changed
}

func TestNewFacetInput(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetMake)

	require.NotNil(t, f)
	assert.Equal(t, domain.FacetMake, f.Facet())
	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
	assert.Empty(t, f.Highlighted())
}

func TestFacetInput_TypingChangesValue(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetKeyword)
	f.Focus()

	assert.True(t, typeRunes(f, "brake"))
	assert.Equal(t, "brake", f.Value())

	changed, _ := f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)
}

func TestFacetInput_IgnoresKeysWhenBlurred(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetKeyword)

	assert.False(t, typeRunes(f, "abc"))
	assert.Empty(t, f.Value())
}

func TestFacetInput_ValueIsTrimmed(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetSKU)

	f.SetValue("  BRK-1001 ")

	assert.Equal(t, "BRK-1001", f.Value())
}

func TestFacetInput_SuggestionNavigation(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetMake)
	f.Focus()
	f.SetSuggestions([]string{"Ford", "GMC", "Jeep"})

	assert.Empty(t, f.Highlighted())
	f.MoveDown()
	assert.Equal(t, "Ford", f.Highlighted())
	f.MoveDown()
	f.MoveDown()
	f.MoveDown()
	assert.Equal(t, "Jeep", f.Highlighted())
	f.MoveUp()
	assert.Equal(t, "GMC", f.Highlighted())
	f.MoveUp()
	f.MoveUp()
	assert.Empty(t, f.Highlighted())
}

func TestFacetInput_SetSuggestionsKeepsHighlight(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetMake)
	f.SetSuggestions([]string{"Ford", "GMC"})
	f.MoveDown()
	f.MoveDown()

	f.SetSuggestions([]string{"Chevrolet", "GMC"})
	assert.Equal(t, "GMC", f.Highlighted())

	f.SetSuggestions([]string{"Jeep"})
	assert.Empty(t, f.Highlighted())
}

func TestFacetInput_SetSuggestionsCapped(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetYear)
	values := make([]string, 20)
	for i := range values {
		values[i] = string(rune('a' + i))
	}

	f.SetSuggestions(values)

	assert.Len(t, f.Suggestions(), MaxSuggestions)
}

func TestFacetInput_Accept(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetModel)
	f.Focus()
	typeRunes(f, "fo")

	assert.False(t, f.Accept())

	f.SetSuggestions([]string{"Focus"})
	f.MoveDown()
	assert.True(t, f.Accept())
	assert.Equal(t, "Focus", f.Value())
	assert.Empty(t, f.Suggestions())
}

func TestFacetInput_BlurClosesDropdown(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetMake)
	f.Focus()
	f.SetSuggestions([]string{"Ford"})

	f.Blur()

	assert.False(t, f.Focused())
	assert.Empty(t, f.Suggestions())
}

func TestFacetInput_View(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetCategory)
	f.SetHint("12 options")
	f.SetSuggestions([]string{"Brakes"})

	view := f.View()
	assert.Contains(t, view, "Category")
	assert.Contains(t, view, "12 options")
	assert.NotContains(t, view, "Brakes")

	f.Focus()
	f.SetSuggestions([]string{"Brakes", "Lighting"})
	view = f.View()
	assert.Contains(t, view, "Brakes")
	assert.Contains(t, view, "Lighting")
}

func TestFacetInput_Reset(t *testing.T) {
	f := NewFacetInput(nil, domain.FacetMake)
	f.SetValue("Ford")
	f.SetHint("hint")
	f.SetSuggestions([]string{"Ford"})

	f.Reset()

	assert.Empty(t, f.Value())
	assert.Empty(t, f.Hint())
	assert.Empty(t, f.Suggestions())
}
