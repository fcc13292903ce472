// Package detail provides the single product view for the TUI.
package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// View shows every field of one product.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	product *domain.Product
	loading bool
	err     error

	width  int
	height int
}

// NewView creates a new product detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 18),
		width:    80,
		height:   24,
	}
}

// Show displays p immediately.
func (v *View) Show(p domain.Product) {
	v.product = &p
	v.loading = false
	v.err = nil
	v.viewport.SetContent(v.buildContent())
	v.viewport.GotoTop()
}

// Load fetches the full record of the shown product.
// Search results can be abbreviated, so the list entry is shown until it arrives.
func (v *View) Load(ctx context.Context, browse driving.BrowseService, id string) tea.Cmd {
	if browse == nil {
		return nil
	}
	v.loading = true
	return func() tea.Msg {
		p, err := browse.Product(ctx, id)
		return messages.ProductLoaded{ID: id, Product: p, Err: err}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProductLoaded:
		if v.product != nil && v.product.ID != msg.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Product != nil {
			offset := v.viewport.YOffset
			v.Show(*msg.Product)
			v.viewport.SetYOffset(offset)
		}
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSearch}
			}
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) buildContent() string {
	p := v.product
	if p == nil {
		return ""
	}

	var lines []string
	field := func(label, value string) {
		if value != "" {
			lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("%-14s", label+":"))+" "+value)
		}
	}

	field("ID", p.ID)
	field("SKU", p.SKU)
	if p.Price != "" {
		field("Price", v.styles.Price.Render(p.Price))
	}
	if p.RegularPrice != "" && p.RegularPrice != p.Price {
		field("Regular price", p.RegularPrice)
	}
	if p.InStock {
		field("Stock", v.styles.InStock.Render("in stock"))
	} else {
		field("Stock", v.styles.OutOfStock.Render("out of stock"))
	}
	field("Categories", strings.Join(p.CategoryList(), " | "))
	if p.YearStart > 0 || p.YearEnd > 0 {
		field("Fits", fmt.Sprintf("%d-%d", p.YearStart, p.YearEnd))
	}
	field("Weight", p.Weight)
	field("Dimensions", p.Dimensions())
	field("Image", p.ImageURL)

	if p.Description != "" {
		wrap := lipgloss.NewStyle().Width(max(v.width-4, 20))
		lines = append(lines, "", wrap.Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.product == nil {
		b.WriteString(v.styles.Title.Render("Product"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No product selected"))
	} else {
		b.WriteString(v.styles.Title.Render(v.product.Name))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
		b.WriteString("\n\n")
		b.WriteString(v.viewport.View())
	}

	b.WriteString("\n\n")
	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading full record..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Warning.Render("Showing search entry: " + v.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, rule and footer.
	v.viewport.Width = width
	v.viewport.Height = max(height-7, 3)
	if v.product != nil {
		v.viewport.SetContent(v.buildContent())
	}
}

// Product returns the shown product, or nil.
func (v *View) Product() *domain.Product {
	return v.product
}

// Loading returns true while the full record is being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the error of the last fetch.
func (v *View) Err() error {
	return v.err
}
