// Package search provides the facet form and results view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// View is the facet form with the product list underneath.
//
// The view owns the FacetController of the session. Controller tasks run
// as commands and come back as messages.TaskDone, which the view folds in
// through Apply before re-rendering the fields.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    []*input.FacetInput
	focus     int
	list      *list.ProductList
	statusbar *status.Bar

	controller driving.FacetController
	session    uint64
	ctx        context.Context

	width        int
	height       int
	ready        bool
	focusResults bool
}

// NewView creates a search view with one field per facet.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	facets := domain.AllFacets()
	fields := make([]*input.FacetInput, 0, len(facets))
	for _, f := range facets {
		fields = append(fields, input.NewFacetInput(s, f))
	}

	return &View{
		styles:    s,
		keymap:    km,
		fields:    fields,
		list:      list.NewProductList(s),
		statusbar: status.NewBar(s, km),
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context tasks run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetController starts a new session on c, discarding the form and results.
// Outcomes still in flight for the previous controller are ignored.
func (v *View) SetController(c driving.FacetController) tea.Cmd {
	v.controller = c
	v.session++
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.list.SetProducts(nil)
	v.focusResults = false
	v.focus = 0
	focusCmd := v.fields[0].Focus()
	v.refreshHints()

	if c == nil {
		return focusCmd
	}
	v.statusbar.SetState(status.StateLoading)
	return tea.Batch(focusCmd, v.run(c.Init()))
}

// Controller returns the controller of the current session.
func (v *View) Controller() driving.FacetController {
	return v.controller
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Focus()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TaskDone:
		return v, v.applyOutcome(msg)

	case messages.ErrorOccurred:
		v.statusbar.SetError(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		if v.controller == nil {
			return v, nil
		}
		if v.focusResults {
			return v, v.handleResultsKey(msg)
		}
		return v, v.handleFormKey(msg)
	}

	return v, nil
}

func (v *View) run(tasks []driving.Task) tea.Cmd {
	return messages.RunTasks(v.ctx, v.session, tasks)
}

func (v *View) applyOutcome(msg messages.TaskDone) tea.Cmd {
	if v.controller == nil || msg.Session != v.session {
		logger.Debug("Dropping %s outcome from replaced session", msg.Outcome.Kind)
		return nil
	}

	follow := v.controller.Apply(msg.Outcome)
	v.syncFields(false)
	v.refreshHints()
	v.refreshSuggestions()

	switch msg.Outcome.Kind {
	case driving.OutcomeSearch:
		v.showSearchOutcome()
	case driving.OutcomeMakes, driving.OutcomeCategories:
		if v.statusbar.State() == status.StateLoading {
			v.statusbar.Clear()
		}
	case driving.OutcomeSuggestions, driving.OutcomeModels, driving.OutcomeYearRange:
	}
	return v.run(follow)
}

func (v *View) showSearchOutcome() {
	c := v.controller
	if c.Busy() {
		return
	}
	if msg := c.Message(); msg != "" {
		v.list.SetProducts(nil)
		v.statusbar.SetError(msg)
		return
	}
	products := c.Results()
	v.list.SetProducts(products)
	v.statusbar.SetResults(len(products))
	if len(products) > 0 {
		v.focusResults = true
		v.fields[v.focus].Blur()
	}
}

func (v *View) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	field := v.fields[v.focus]

	switch {
	case keymap.Matches(key, v.keymap.Clear):
		return v.clear()

	case keymap.Matches(key, v.keymap.NextField):
		cmd, _ := v.commit()
		return tea.Batch(cmd, v.moveFocus(1))

	case keymap.Matches(key, v.keymap.PrevField):
		cmd, _ := v.commit()
		return tea.Batch(cmd, v.moveFocus(-1))

	case keymap.Matches(key, v.keymap.Up):
		field.MoveUp()
		return nil

	case keymap.Matches(key, v.keymap.Down):
		field.MoveDown()
		return nil

	case keymap.Matches(key, v.keymap.Accept) && field.Highlighted() != "":
		field.Accept()
		cmd, _ := v.commit()
		return cmd

	case keymap.Matches(key, v.keymap.Search):
		if field.Highlighted() != "" {
			field.Accept()
		}
		cmd, ok := v.commit()
		if !ok {
			return cmd
		}
		return tea.Batch(cmd, v.search())

	case keymap.Matches(key, v.keymap.Back):
		if len(field.Suggestions()) > 0 {
			field.SetSuggestions(nil)
			return nil
		}
		if !v.list.IsEmpty() {
			v.focusResults = true
			field.Blur()
		}
		return nil
	}

	changed, cmd := field.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, v.typed(field))
}

func (v *View) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Open):
		p := v.list.SelectedProduct()
		if p == nil {
			return nil
		}
		product := *p
		return func() tea.Msg {
			return messages.ProductSelected{Product: product}
		}
	case keymap.Matches(key, v.keymap.Back),
		keymap.Matches(key, v.keymap.NextField),
		keymap.Matches(key, v.keymap.PrevField):
		v.focusResults = false
		return v.fields[v.focus].Focus()
	case keymap.Matches(key, v.keymap.Clear):
		v.focusResults = false
		return tea.Batch(v.fields[v.focus].Focus(), v.clear())
	}
	return nil
}

// typed issues typeahead for the edited field and refreshes its dropdown.
func (v *View) typed(field *input.FacetInput) tea.Cmd {
	var cmd tea.Cmd
	if field.Facet().SupportsSuggestions() {
		cmd = v.run(v.controller.Suggest(field.Facet(), field.Value()))
	}
	v.refreshSuggestions()
	return cmd
}

// commit stores the focused field in the controller.
// It reports false when the value was rejected.
func (v *View) commit() (tea.Cmd, bool) {
	field := v.fields[v.focus]
	facet := field.Facet()
	value := field.Value()
	if value == v.controller.State().Get(facet) {
		return nil, true
	}

	tasks, err := v.controller.SetFacet(facet, value)
	if err != nil {
		v.statusbar.SetError(v.describe(facet, value, err))
		v.syncFields(true)
		return v.run(tasks), false
	}
	if v.statusbar.State() == status.StateError {
		v.statusbar.Clear()
	}
	v.syncFields(true)
	v.refreshHints()
	return v.run(tasks), true
}

func (v *View) describe(facet domain.Facet, value string, err error) string {
	c := v.controller
	switch {
	case errors.Is(err, domain.ErrYearOutOfRange):
		return fmt.Sprintf("year %s is outside %s", value, c.YearRange())
	case errors.Is(err, domain.ErrModelNotAvailable) && c.State().Make == "":
		return "choose a make before the model"
	case errors.Is(err, domain.ErrModelNotAvailable):
		return fmt.Sprintf("model %q is not available for %s", value, c.State().Make)
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Sprintf("invalid %s %q", strings.ToLower(facet.Label()), value)
	default:
		return err.Error()
	}
}

func (v *View) search() tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	return messages.RunTask(v.ctx, v.session, v.controller.Search())
}

func (v *View) clear() tea.Cmd {
	var tasks []driving.Task
	for _, f := range domain.AllFacets() {
		t, err := v.controller.SetFacet(f, "")
		if err != nil {
			logger.Warn("Failed to clear %s: %v", f, err)
		}
		tasks = append(tasks, t...)
	}
	for _, f := range v.fields {
		f.SetValue("")
		f.SetSuggestions(nil)
	}
	v.list.SetProducts(nil)
	v.statusbar.Clear()
	v.refreshHints()
	return v.run(tasks)
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	cmd := v.fields[v.focus].Focus()
	v.refreshSuggestions()
	return cmd
}

// syncFields copies controller state into the fields. The focused field
// keeps what the user is typing unless includeFocused is set.
func (v *View) syncFields(includeFocused bool) {
	if v.controller == nil {
		return
	}
	state := v.controller.State()
	for i, f := range v.fields {
		if i == v.focus && !includeFocused && !v.focusResults {
			continue
		}
		if want := state.Get(f.Facet()); f.Value() != want {
			f.SetValue(want)
		}
	}
}

func (v *View) refreshHints() {
	c := v.controller
	for _, f := range v.fields {
		if c == nil {
			f.SetHint("")
			continue
		}
		switch f.Facet() {
		case domain.FacetMake:
			f.SetHint(countHint(len(c.Options(domain.FacetMake)), "make"))
		case domain.FacetModel:
			if c.State().Make == "" {
				f.SetHint("")
			} else {
				f.SetHint(countHint(len(c.Options(domain.FacetModel)), "model"))
			}
		case domain.FacetYear:
			f.SetHint(c.YearRange().String())
		case domain.FacetCategory:
			f.SetHint(countHint(len(c.Options(domain.FacetCategory)), "category"))
		case domain.FacetKeyword, domain.FacetSKU:
			f.SetHint("")
		}
	}
}

func countHint(n int, noun string) string {
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "1 " + noun
	case strings.HasSuffix(noun, "y"):
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	default:
		return fmt.Sprintf("%d %ss", n, noun)
	}
}

// refreshSuggestions fills the dropdown of the focused field.
func (v *View) refreshSuggestions() {
	if v.controller == nil || v.focusResults {
		return
	}
	field := v.fields[v.focus]
	field.SetSuggestions(v.suggestionsFor(field.Facet(), field.Value()))
}

func (v *View) suggestionsFor(facet domain.Facet, value string) []string {
	c := v.controller
	switch facet {
	case domain.FacetMake, domain.FacetModel:
		if value == "" || value == c.State().Get(facet) {
			return c.Options(facet)
		}
		return c.Suggestions(facet)
	case domain.FacetKeyword:
		return c.Suggestions(facet)
	case domain.FacetCategory:
		return domain.FilterByTerm(c.Options(facet), value)
	case domain.FacetYear:
		var years []string
		for _, y := range c.YearRange().Years() {
			if s := strconv.Itoa(y); strings.HasPrefix(s, value) {
				years = append(years, s)
			}
			if len(years) == input.MaxSuggestions {
				break
			}
		}
		return years
	default:
		return nil
	}
}

// Typing returns true while a facet field has focus.
func (v *View) Typing() bool {
	return !v.focusResults
}

// FocusedFacet returns the facet of the focused field.
func (v *View) FocusedFacet() domain.Facet {
	return v.fields[v.focus].Facet()
}

// Field returns the field for a facet, or nil.
func (v *View) Field(f domain.Facet) *input.FacetInput {
	for _, field := range v.fields {
		if field.Facet() == f {
			return field
		}
	}
	return nil
}

// Products returns the products currently listed.
func (v *View) Products() []domain.Product {
	return v.list.Products()
}

// StatusBar returns the status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, len(v.fields)+6)
	sections = append(sections, v.styles.Title.Render("partfinder"), "")
	for _, f := range v.fields {
		sections = append(sections, f.View())
	}
	sections = append(sections, "")
	if v.controller != nil && (v.controller.Searched() || !v.list.IsEmpty()) {
		sections = append(sections, v.list.View(), "")
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	for _, f := range v.fields {
		f.SetWidth(width)
	}
	// Fields, dropdown, title and status bar.
	listHeight := height - len(v.fields) - input.MaxSuggestions - 6
	if listHeight < 4 {
		listHeight = 4
	}
	v.list.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}
