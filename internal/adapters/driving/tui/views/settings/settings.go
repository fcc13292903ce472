// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

// ErrNoSettingsService is reported when the view has nothing to load from.
var ErrNoSettingsService = errors.New("settings service not available")

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	settings *domain.AppSettings
	invalid  error
	err      error
	saved    string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return &View{
		styles:          s,
		keymap:          km,
		settingsService: settingsService,
		input:           ti,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		if err != nil {
			return messages.SettingsLoaded{Err: err}
		}
		return messages.SettingsLoaded{Settings: settings, Invalid: v.settingsService.Validate()}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
			v.invalid = msg.Invalid
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = ""
			return v, nil
		}
		v.err = nil
		v.saved = msg.Key
		v.editing = false
		v.input.Blur()
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleListKey(msg)
	}

	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.keys())-1 {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Search):
		if v.settings == nil || len(v.keys()) == 0 {
			return v, nil
		}
		v.editing = true
		v.saved = ""
		v.input.SetValue(services.SettingValue(v.settings, v.keys()[v.selected]))
		v.input.CursorEnd()
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.editing = false
		v.err = nil
		v.input.Blur()
		return v, nil
	case keymap.Matches(key, v.keymap.Search):
		return v, v.saveSetting(v.keys()[v.selected], strings.TrimSpace(v.input.Value()))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) keys() []string {
	if v.settingsService == nil {
		return nil
	}
	return v.settingsService.Keys()
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, key := range v.keys() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		value := services.SettingValue(v.settings, key)
		if i == v.selected && v.editing {
			value = v.input.View()
		}

		line := fmt.Sprintf("%s%-26s %s", indicator, key, value)
		if i == v.selected && !v.editing {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.saved != "":
		b.WriteString(v.styles.Success.Render("Saved " + v.saved))
	case v.invalid != nil:
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", v.invalid.Error())))
	case v.settings != nil:
		b.WriteString(v.styles.Success.Render("Configuration is valid"))
	}
	b.WriteString("\n\n")

	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] select  [enter] edit  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Reset returns the view to the list of settings.
func (v *View) Reset() {
	v.editing = false
	v.saved = ""
	v.err = nil
	v.input.Blur()
}

// Editing returns true while a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the index of the selected setting.
func (v *View) Selected() int {
	return v.selected
}
