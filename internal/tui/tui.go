// Package tui provides a Bubble Tea terminal user interface for clineup.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clineup/clineup/internal/config"
	"github.com/clineup/clineup/internal/organize"
	"github.com/clineup/clineup/internal/placeholder"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// DefaultFolderFormat pre-fills the template input when settings have none.
const DefaultFolderFormat = "%year/%month"

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateOrganizing
	StateComplete
	StateError
)

var strategies = []string{config.StrategyCopy, config.StrategyMove, config.StrategySymlink}

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   organize.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	log       logrus.FieldLogger
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *organize.Manager
	events  chan organize.ProgressEvent
	summary organize.Summary

	processed int32
	total     int32

	// Options
	dryRun     bool
	duplicates bool
	verbose    bool
	strategy   int

	width  int
	height int
}

// NewModel creates a new TUI model over base settings. Source and
// destination come from the settings; the folder format is edited on screen.
func NewModel(settings *config.Settings, log logrus.FieldLogger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = DefaultFolderFormat
	ti.SetValue(settings.FolderFormat)
	if settings.FolderFormat == "" {
		ti.SetValue(DefaultFolderFormat)
	}
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	strategy := 0
	for i, s := range strategies {
		if s == settings.Strategy {
			strategy = i
		}
	}

	return Model{
		state:      StateInput,
		textInput:  ti,
		spinner:    sp,
		progress:   prog,
		settings:   settings,
		log:        log,
		logs:       make([]LogEntry, 0),
		ctx:        ctx,
		cancel:     cancel,
		dryRun:     settings.DryRun,
		duplicates: settings.DropDuplicates,
		strategy:   strategy,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the organizer reports progress.
	ProgressMsg struct {
		Event organize.ProgressEvent
	}

	// ScanDoneMsg is sent when file listing completes.
	ScanDoneMsg struct {
		Manager *organize.Manager
		Files   int
		Err     error
	}

	// RunDoneMsg is sent when all files are processed.
	RunDoneMsg struct {
		Summary organize.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

var errCancelled = errors.New("cancelled by user")

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateOrganizing || m.state == StateScanning {
				m.cancel()
				m.logs = append(m.logs, LogEntry{Message: "Cancelling...", Level: organize.LevelWarning})
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				settings, err := m.runSettings()
				if err != nil {
					m.state = StateError
					m.err = err
					return m, nil
				}
				m.state = StateScanning
				m.events = make(chan organize.ProgressEvent, 64)
				return m, tea.Batch(m.scan(settings), m.waitForEvent(), m.spinner.Tick)
			}

		// Option toggles never reach the text input, whose keymap binds them.
		case "ctrl+d":
			if m.state == StateInput {
				m.dryRun = !m.dryRun
			}
			return m, nil

		case "ctrl+u":
			if m.state == StateInput {
				m.duplicates = !m.duplicates
			}
			return m, nil

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "ctrl+s":
			if m.state == StateInput {
				m.strategy = (m.strategy + 1) % len(strategies)
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				if m.manager != nil {
					m.manager.Close()
				}
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.processed = 0
				m.total = 0
				m.manager = nil
				m.summary = organize.Summary{}
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				return m, m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level != organize.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}

	case ScanDoneMsg:
		if m.state != StateScanning {
			break
		}
		switch {
		case m.ctx.Err() != nil:
			if msg.Manager != nil {
				msg.Manager.Close()
			}
			m.closeEvents()
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.closeEvents()
			m.state = StateError
			m.err = msg.Err
		default:
			m.manager = msg.Manager
			m.total = int32(msg.Files)
			m.state = StateOrganizing
			cmds = append(cmds, m.run(), m.tickProgress())
		}

	case RunDoneMsg:
		if m.state != StateOrganizing {
			break
		}
		m.closeEvents()
		m.summary = msg.Summary
		if m.manager != nil {
			m.processed, m.total = m.manager.GetProgress()
			m.manager.Close()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateOrganizing {
			m.processed, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// runSettings copies the base settings with the on-screen choices applied.
func (m Model) runSettings() (*config.Settings, error) {
	s := *m.settings
	s.FolderFormat = strings.TrimSpace(m.textInput.Value())
	s.DryRun = m.dryRun
	s.DropDuplicates = m.duplicates
	s.Strategy = strategies[m.strategy]
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// closeEvents ends the relay once no organizer goroutine can send.
func (m *Model) closeEvents() {
	if m.events != nil {
		close(m.events)
		m.events = nil
	}
}

// waitForEvent relays the next organizer event to Update.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: ev}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("clineup"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Sort photos into folders built from their metadata"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateOrganizing:
		b.WriteString(m.viewOrganizing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Folder format:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(placeholderStyle.Render(strings.Join(placeholder.Names(), " ")))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Dry run (ctrl+d)\n", check(m.dryRun))
	fmt.Fprintf(&b, "  %s Drop duplicates (ctrl+u)\n", check(m.duplicates))
	fmt.Fprintf(&b, "  %s Verbose output (ctrl+v)\n", check(m.verbose))
	fmt.Fprintf(&b, "  Strategy: %s (ctrl+s)\n", strategies[m.strategy])
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s -> %s", m.settings.Source, m.settings.Destination)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning files..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewOrganizing() string {
	var b strings.Builder

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %s/%s", humanize.Comma(int64(m.processed)), humanize.Comma(int64(m.total)))))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	title := "Done!"
	if m.summary.DryRun {
		title = "Dry run complete, nothing was changed."
	}
	return boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Files: %d\n"+
			"Placed: %d\n"+
			"Duplicates: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d",
		title,
		m.summary.Total,
		m.summary.Placed,
		m.summary.Duplicates,
		m.summary.Skipped,
		m.summary.Failed,
	)) + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case organize.LevelError:
			style = errorStyle
			prefix = "✗"
		case organize.LevelWarning:
			style = warningStyle
			prefix = "!"
		case organize.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case organize.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+d: dry run • ctrl+u: duplicates • ctrl+v: verbose • ctrl+s: strategy • esc: quit"
	case StateScanning, StateOrganizing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// scan builds the manager and lists the files.
func (m Model) scan(settings *config.Settings) tea.Cmd {
	ctx, events, log := m.ctx, m.events, m.log
	return func() tea.Msg {
		manager, err := organize.NewManager(settings, log, func(event organize.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		if err := manager.Initialize(ctx); err != nil {
			manager.Close()
			return ScanDoneMsg{Err: err}
		}
		return ScanDoneMsg{Manager: manager, Files: len(manager.Files())}
	}
}

// run processes the files in the background.
func (m Model) run() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		if manager == nil {
			return RunDoneMsg{Err: errors.New("no manager")}
		}
		summary, err := manager.Run(ctx)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewModel(settings, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
