package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/services"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	return []string{
		services.KeyCatalogBaseURL,
		services.KeyCatalogTimeout,
		services.KeyCatalogRPS,
		services.KeyCatalogBurst,
		services.KeySearchMinTermLength,
	}
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return *domain.DefaultAppSettings()
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	svc.On("Get").Return(domain.DefaultAppSettings(), nil)
	svc.On("Validate").Return(nil).Maybe()
	v := NewView(nil, nil, svc)
	v.Update(v.Init()())
	return v
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Editing())
	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_InitWithoutService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoSettingsService)
}

func TestView_ShowsSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Validate").Return(nil)
	v := loadedView(t, svc)

	view := v.View()

	assert.Contains(t, view, services.KeyCatalogBaseURL)
	assert.Contains(t, view, domain.DefaultCatalogBaseURL)
	assert.Contains(t, view, services.KeySearchMinTermLength)
	assert.Contains(t, view, "Configuration is valid")
}

func TestView_ShowsValidationWarning(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Validate").Return(errors.New("catalog.burst must be at least 1"))
	v := loadedView(t, svc)

	assert.Contains(t, v.View(), "Warning: catalog.burst must be at least 1")
}

func TestView_ValidatesOncePerLoad(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Validate").Return(errors.New("catalog.burst must be at least 1")).Once()
	svc.On("Validate").Return(nil).Once()
	v := loadedView(t, svc)

	for i := 0; i < 3; i++ {
		assert.Contains(t, v.View(), "Warning: catalog.burst must be at least 1")
	}
	svc.AssertNumberOfCalls(t, "Validate", 1)

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "Configuration is valid")
	svc.AssertNumberOfCalls(t, "Validate", 2)
}

func TestView_LoadError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(nil, errors.New("disk gone"))
	v := NewView(nil, nil, svc)

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "Error: disk gone")
	svc.AssertNotCalled(t, "Validate")
}

func TestView_Navigation(t *testing.T) {
	svc := new(MockSettingsService)
	v := loadedView(t, svc)

	v.Update(key(tea.KeyUp))
	assert.Equal(t, 0, v.Selected())

	for i := 0; i < 10; i++ {
		v.Update(key(tea.KeyDown))
	}
	assert.Equal(t, 4, v.Selected())
}

func TestView_EditAndSave(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Set", services.KeyCatalogTimeout, "30").Return(nil)
	svc.On("Validate").Return(nil)
	v := loadedView(t, svc)
	v.Update(key(tea.KeyDown))

	v.Update(key(tea.KeyEnter))
	require.True(t, v.Editing())

	v.Update(key(tea.KeyBackspace))
	v.Update(key(tea.KeyBackspace))
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("30")})
	_, cmd := v.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	_, reload := v.Update(saved)
	assert.False(t, v.Editing())
	require.NotNil(t, reload)
	assert.Contains(t, v.View(), "Saved "+services.KeyCatalogTimeout)
	svc.AssertNumberOfCalls(t, "Validate", 1)

	v.Update(reload())
	svc.AssertNumberOfCalls(t, "Validate", 2)
	svc.AssertExpectations(t)
}

func TestView_SaveRejected(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Set", services.KeyCatalogBaseURL, domain.DefaultCatalogBaseURL).
		Return(domain.ErrInvalidInput)
	svc.On("Validate").Return(nil)
	v := loadedView(t, svc)

	v.Update(key(tea.KeyEnter))
	_, cmd := v.Update(key(tea.KeyEnter))
	v.Update(cmd())

	assert.True(t, v.Editing())
	assert.Contains(t, v.View(), "Error: invalid input")
}

func TestView_EscCancelsEdit(t *testing.T) {
	svc := new(MockSettingsService)
	v := loadedView(t, svc)
	v.Update(key(tea.KeyEnter))

	_, cmd := v.Update(key(tea.KeyEsc))

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_EscLeavesView(t *testing.T) {
	v := loadedView(t, new(MockSettingsService))

	_, cmd := v.Update(key(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := loadedView(t, new(MockSettingsService))
	v.Update(key(tea.KeyEnter))

	v.Reset()

	assert.False(t, v.Editing())
}
