// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// TaskDone carries the outcome of a controller task back to the loop.
// Session identifies the controller that issued the task; outcomes from a
// replaced controller are dropped.
type TaskDone struct {
	Session uint64
	Outcome driving.Outcome
}

// ProductSelected is sent when a search result is opened.
type ProductSelected struct {
	Product domain.Product
}

// ProductLoaded carries a single product fetched for the detail view.
type ProductLoaded struct {
	ID      string
	Product *domain.Product
	Err     error
}

// ConfigChanged signals that the config file changed and the catalog was rebuilt.
type ConfigChanged struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
	// Invalid is the validation failure of the loaded settings, if any.
	Invalid error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the facet form and results view.
	ViewSearch ViewType = iota
	// ViewDetail shows a single product.
	ViewDetail
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDetail:
		return "detail"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// RunTask runs a controller task off the loop and delivers its outcome as TaskDone.
func RunTask(ctx context.Context, session uint64, task driving.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		return TaskDone{Session: session, Outcome: task(ctx)}
	}
}

// RunTasks runs every task concurrently. It returns nil when there is nothing to run.
func RunTasks(ctx context.Context, session uint64, tasks []driving.Task) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, task := range tasks {
		if cmd := RunTask(ctx, session, task); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
