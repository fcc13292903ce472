// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// MaxSuggestions caps the dropdown shown under a field.
const MaxSuggestions = 8

// FacetInput is one labelled facet field with a suggestion dropdown.
type FacetInput struct {
	facet     domain.Facet
	textinput textinput.Model
	styles    *styles.Styles

	hint        string
	suggestions []string
	highlight   int
}

// NewFacetInput creates a field for facet.
func NewFacetInput(s *styles.Styles, facet domain.Facet) *FacetInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 40
	ti.Placeholder = placeholder(facet)
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &FacetInput{
		facet:     facet,
		textinput: ti,
		styles:    s,
		highlight: -1,
	}
}

func placeholder(f domain.Facet) string {
	switch f {
	case domain.FacetMake:
		return "any make"
	case domain.FacetModel:
		return "choose a make first"
	case domain.FacetYear:
		return "any year"
	case domain.FacetCategory:
		return "any category"
	case domain.FacetKeyword:
		return "part name or description"
	case domain.FacetSKU:
		return "exact SKU"
	default:
		return ""
	}
}

// Update forwards input messages to the text field.
// It reports whether the value changed.
func (f *FacetInput) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := f.textinput.Value()
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f.textinput.Value() != before, cmd
}

// View renders the label, the field, the hint and, when focused, the dropdown.
func (f *FacetInput) View() string {
	label := f.styles.FacetLabel.Render(f.facet.Label())
	if f.Focused() {
		label = f.styles.FacetFocused.Render(f.facet.Label())
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(f.textinput.View())
	if f.hint != "" {
		b.WriteString("  ")
		b.WriteString(f.styles.Muted.Render(f.hint))
	}

	if !f.Focused() {
		return b.String()
	}
	for i, s := range f.suggestions {
		b.WriteString("\n")
		if i == f.highlight {
			b.WriteString(f.styles.Suggestion.Render(f.styles.Selected.Render(s)))
		} else {
			b.WriteString(f.styles.Suggestion.Render(s))
		}
	}
	return b.String()
}

// Facet returns the facet edited by this field.
func (f *FacetInput) Facet() domain.Facet {
	return f.facet
}

// Value returns the trimmed field value.
func (f *FacetInput) Value() string {
	return strings.TrimSpace(f.textinput.Value())
}

// SetValue replaces the field value and moves the cursor to the end.
func (f *FacetInput) SetValue(value string) {
	f.textinput.SetValue(value)
	f.textinput.CursorEnd()
}

// SetHint sets the muted text shown after the field.
func (f *FacetInput) SetHint(hint string) {
	f.hint = hint
}

// Hint returns the muted text shown after the field.
func (f *FacetInput) Hint() string {
	return f.hint
}

// SetSuggestions replaces the dropdown entries, keeping the highlight if it
// still points at the same value.
func (f *FacetInput) SetSuggestions(values []string) {
	if len(values) > MaxSuggestions {
		values = values[:MaxSuggestions]
	}
	current := f.Highlighted()
	f.suggestions = values
	f.highlight = -1
	for i, v := range values {
		if current != "" && v == current {
			f.highlight = i
		}
	}
}

// Suggestions returns the dropdown entries.
func (f *FacetInput) Suggestions() []string {
	return f.suggestions
}

// MoveUp moves the highlight up, leaving the dropdown above the first entry.
func (f *FacetInput) MoveUp() {
	if f.highlight >= 0 {
		f.highlight--
	}
}

// MoveDown moves the highlight down.
func (f *FacetInput) MoveDown() {
	if f.highlight < len(f.suggestions)-1 {
		f.highlight++
	}
}

// Highlighted returns the highlighted suggestion, or "".
func (f *FacetInput) Highlighted() string {
	if f.highlight < 0 || f.highlight >= len(f.suggestions) {
		return ""
	}
	return f.suggestions[f.highlight]
}

// Accept copies the highlighted suggestion into the field.
// It reports whether anything was accepted.
func (f *FacetInput) Accept() bool {
	s := f.Highlighted()
	if s == "" {
		return false
	}
	f.SetValue(s)
	f.suggestions = nil
	f.highlight = -1
	return true
}

// Focus sets focus on the field.
func (f *FacetInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus and closes the dropdown.
func (f *FacetInput) Blur() {
	f.textinput.Blur()
	f.suggestions = nil
	f.highlight = -1
}

// Focused returns whether the field is focused.
func (f *FacetInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the text field.
func (f *FacetInput) SetWidth(width int) {
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Reset clears the value, hint and dropdown.
func (f *FacetInput) Reset() {
	f.textinput.Reset()
	f.hint = ""
	f.suggestions = nil
	f.highlight = -1
}
