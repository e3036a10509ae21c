package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clineup/clineup/internal/config"
	"github.com/clineup/clineup/internal/logging"
	"github.com/clineup/clineup/internal/organize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := config.DefaultSettings()
	s.Source = t.TempDir()
	s.Destination = t.TempDir()
	return NewModel(s, logging.Discard())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, StateInput, m.state)
	assert.Equal(t, DefaultFolderFormat, m.textInput.Value())
	assert.Equal(t, config.StrategyCopy, strategies[m.strategy])
	assert.Contains(t, m.View(), "Folder format")
}

func TestToggles(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.True(t, m.dryRun)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.True(t, m.duplicates)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, config.StrategyMove, strategies[m.strategy])

	s, err := m.runSettings()
	require.NoError(t, err)
	assert.True(t, s.DryRun)
	assert.True(t, s.DropDuplicates)
	assert.Equal(t, config.StrategyMove, s.Strategy)
	assert.Equal(t, DefaultFolderFormat, s.FolderFormat)

	// base settings stay untouched
	assert.False(t, m.settings.DryRun)
}

func TestLogsFilterVerboseAndTrim(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, ProgressMsg{Event: organize.ProgressEvent{Message: "hidden", Level: organize.LevelVerbose}})
	assert.Empty(t, m.logs)

	for range maxLogs + 5 {
		m = update(t, m, ProgressMsg{Event: organize.ProgressEvent{Message: "line", Level: organize.LevelInfo}})
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestScanFailureShowsError(t *testing.T) {
	m := newTestModel(t)
	m.state = StateScanning

	m = update(t, m, ScanDoneMsg{Err: errors.New("boom")})
	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "boom")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, StateInput, m.state)
	assert.NoError(t, m.err)
}

func TestStaleDoneMessagesIgnored(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, RunDoneMsg{Err: errors.New("late")})
	assert.Equal(t, StateInput, m.state)
}

func TestCompleteView(t *testing.T) {
	m := newTestModel(t)
	m.state = StateComplete
	m.summary = organize.Summary{Total: 3, Placed: 2, Duplicates: 1, DryRun: true}

	view := m.View()
	assert.Contains(t, view, "Dry run complete")
	assert.Contains(t, view, "Placed: 2")
}
