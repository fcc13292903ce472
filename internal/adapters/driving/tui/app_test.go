package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configmem "github.com/custodia-labs/partfinder-cli/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

// drain runs cmd and every command produced while handling its messages.
// Commands that block, like the config watcher, are abandoned after a second.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- next() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(time.Second):
			continue
		}

		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, follow := app.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func startApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	app.WithContext(ctx)
	app.SetDimensions(120, 40)
	drain(t, app, app.Init())
	return app
}

func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	drain(t, app, cmd)
}

func typeText(t *testing.T, app *App, text string) {
	t.Helper()
	for _, r := range text {
		press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.NotNil(t, app.Controller())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingController)
	assert.Nil(t, app)
}

func TestNewApp_ControllerFailure(t *testing.T) {
	boom := errors.New("catalog unreachable")
	ports := &Ports{NewController: func() (driving.FacetController, error) { return nil, boom }}

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	assert.Same(t, app, app.WithContext(context.Background()))
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "partfinder")
}

func TestApp_InitLoadsOptions(t *testing.T) {
	app := startApp(t, newTestPorts())

	assert.Contains(t, app.Controller().Options(domain.FacetMake), "Ford")
	assert.NotEmpty(t, app.Controller().Options(domain.FacetCategory))
	assert.Contains(t, app.View(), "Ford")
}

func TestApp_Quit(t *testing.T) {
	app := startApp(t, newTestPorts())

	_, cmd := app.Update(key(tea.KeyCtrlC))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app := startApp(t, newTestPorts())

	press(t, app, key(tea.KeyF1))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Toggle help")

	press(t, app, key(tea.KeyEsc))
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_QuestionMarkIsTypedInFields(t *testing.T) {
	app := startApp(t, newTestPorts())
	for i := 0; i < 4; i++ {
		press(t, app, key(tea.KeyTab))
	}

	typeText(t, app, "?")

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Equal(t, "?", app.searchView.Field(domain.FacetKeyword).Value())
}

func TestApp_SearchAndOpenProduct(t *testing.T) {
	app := startApp(t, newTestPorts())
	typeText(t, app, "Ford")
	press(t, app, key(tea.KeyTab))
	typeText(t, app, "Focus")

	press(t, app, key(tea.KeyEnter))
	require.Len(t, app.Controller().Results(), 3)

	chosen := app.Controller().Results()[1]
	press(t, app, key(tea.KeyDown))
	press(t, app, key(tea.KeyEnter))

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	assert.Contains(t, app.View(), chosen.SKU)

	press(t, app, key(tea.KeyEsc))
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_QuestionMarkOpensHelpFromResults(t *testing.T) {
	app := startApp(t, newTestPorts())
	press(t, app, key(tea.KeyEnter))
	require.NotEmpty(t, app.Controller().Results())

	typeText(t, app, "?")

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_Settings(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = services.NewSettingsService(configmem.NewConfigStore())
	app := startApp(t, ports)

	press(t, app, key(tea.KeyCtrlS))

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), services.KeyCatalogBaseURL)

	press(t, app, key(tea.KeyEsc))
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SettingsUnavailable(t *testing.T) {
	app := startApp(t, newTestPorts())

	press(t, app, key(tea.KeyCtrlS))

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_ConfigChangeRestartsSession(t *testing.T) {
	ports := newTestPorts()
	app := startApp(t, ports)
	typeText(t, app, "Ford")
	press(t, app, key(tea.KeyTab))
	first := app.Controller()
	require.Equal(t, "Ford", first.State().Make)

	watcher := newFakeWatcher()
	ports.Watcher = watcher
	wait := app.watchConfig()
	require.NotNil(t, wait)
	watcher.Trigger()
	drain(t, app, wait)

	assert.NotSame(t, first, app.Controller())
	assert.True(t, app.Controller().State().IsEmpty())
	assert.Contains(t, app.Controller().Options(domain.FacetMake), "Ford")
	assert.Contains(t, app.View(), "Settings reloaded")
}

func TestApp_ConfigChangeWithFailingFactory(t *testing.T) {
	catalog := memory.NewSeeded()
	calls := 0
	ports := &Ports{
		NewController: func() (driving.FacetController, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("invalid settings")
			}
			return services.NewFacetController(catalog, services.ControllerConfig{}), nil
		},
	}
	app := startApp(t, ports)
	first := app.Controller()

	drain(t, app, func() tea.Msg { return messages.ConfigChanged{} })

	assert.Same(t, first, app.Controller())
	assert.EqualError(t, app.Err(), "invalid settings")
	assert.Contains(t, app.View(), "catalog is unavailable")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := startApp(t, newTestPorts())
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.Equal(t, boom, app.Err())
	assert.Contains(t, app.View(), "boom")
}

func TestApp_StaleSessionOutcomeIgnored(t *testing.T) {
	app := startApp(t, newTestPorts())

	app.Update(messages.TaskDone{
		Session: 42,
		Outcome: driving.Outcome{Kind: driving.OutcomeSearch, Products: []domain.Product{{ID: "x"}}},
	})

	assert.False(t, app.Controller().Searched())
	assert.NotEqual(t, status.StateResults, app.searchView.StatusBar().State())
}
