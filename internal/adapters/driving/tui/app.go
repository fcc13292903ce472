package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView   *search.View
	detailView   *detail.View
	settingsView *settings.View

	// controller is the first session, handed to the search view by Init.
	controller driving.FacetController

	// changes receives a value after every config reload.
	changes chan struct{}

	currentView  messages.ViewType
	previousView messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application and starts its first search session.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	controller, err := ports.NewController()
	if err != nil {
		return nil, fmt.Errorf("starting search session: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		searchView:   search.NewView(s, km),
		detailView:   detail.NewView(s, km),
		settingsView: settings.NewView(s, km, ports.Settings),
		controller:   controller,
		currentView:  messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the option lists and starts watching the config file.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("partfinder"),
		a.searchView.SetController(a.controller),
		a.watchConfig(),
	)
}

// watchConfig runs the watcher in the background and returns the command
// that waits for its first change.
func (a *App) watchConfig() tea.Cmd {
	if a.ports.Watcher == nil || a.changes != nil {
		return nil
	}
	a.changes = make(chan struct{}, 1)

	go func() {
		err := a.ports.Watcher.Watch(a.ctx, func() {
			select {
			case a.changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			logger.Error(err, "Config watcher stopped")
		}
	}()
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-a.changes:
			return messages.ConfigChanged{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.TaskDone:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ProductSelected:
		a.detailView.Show(msg.Product)
		a.currentView = messages.ViewDetail
		return a, a.detailView.Load(a.ctx, a.ports.Browse, msg.Product.ID)

	case messages.ProductLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ConfigChanged:
		return a, tea.Batch(a.restartSession(), a.waitForChange())

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd
	}

	return a, nil
}

// restartSession replaces the controller so new settings take effect.
// The facet form starts over because option lists may have changed.
func (a *App) restartSession() tea.Cmd {
	controller, err := a.ports.NewController()
	if err != nil {
		a.err = err
		logger.Warn("Restarting search session failed: %v", err)
		a.searchView.StatusBar().SetError("settings changed but the catalog is unavailable")
		return nil
	}
	a.controller = controller
	cmd := a.searchView.SetController(controller)
	a.searchView.StatusBar().SetInfo("Settings reloaded")
	if a.currentView == messages.ViewDetail {
		a.currentView = messages.ViewSearch
	}
	logger.Info("Search session restarted after config change")
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if keymap.Matches(key, a.keymap.Quit) {
		return tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(key, a.keymap.Back) || keymap.Matches(key, a.keymap.Help) {
			a.currentView = a.previousView
		}
		return nil
	}

	if a.wantsHelp(key) {
		a.previousView = a.currentView
		a.currentView = messages.ViewHelp
		return nil
	}

	if keymap.Matches(key, a.keymap.Settings) && a.currentView != messages.ViewSettings && a.ports.Settings != nil {
		a.currentView = messages.ViewSettings
		a.settingsView.Reset()
		return a.settingsView.Init()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// wantsHelp reports whether key opens help. "?" is typed text while a
// field or a setting is being edited.
func (a *App) wantsHelp(key string) bool {
	if !keymap.Matches(key, a.keymap.Help) {
		return false
	}
	if key != "?" {
		return true
	}
	switch a.currentView {
	case messages.ViewSearch:
		return !a.searchView.Typing()
	case messages.ViewSettings:
		return !a.settingsView.Editing()
	case messages.ViewDetail, messages.ViewHelp:
	}
	return true
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSearch:
	}
	return a.searchView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Facets:
  tab / shift+tab   Move between fields (leaving a field applies it)
  ↑/↓               Highlight a suggestion
  →                 Accept the highlighted suggestion
  enter             Search with the current facets
  ctrl+r            Clear every facet

Results:
  ↑/↓               Move through products
  enter             Show product details
  esc               Back to the facets

Anywhere:
  ctrl+s            Settings
  f1                Toggle help
  ctrl+c            Quit

` + a.styles.Help.Render("[esc] back")
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Controller returns the controller of the current search session.
func (a *App) Controller() driving.FacetController {
	return a.controller
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
