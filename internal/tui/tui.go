// Package tui provides a Bubble Tea terminal user interface for panels-downloader.
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
	"github.com/handiism/panels-downloader/internal/config"
	"github.com/handiism/panels-downloader/internal/download"
	"github.com/handiism/panels-downloader/internal/panels"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
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
)

const maxLogLines = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	imageCnt  int
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	// Download progress
	totalFiles    int32
	doneFiles     int32
	failedFiles   int32
	receivedBytes int64
	summary       download.Summary

	// Options
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model with the manifest path prefilled.
func NewModel() Model {
	settings := config.DefaultSettings()

	ti := textinput.New()
	ti.Placeholder = panels.DefaultManifestPath
	ti.SetValue(settings.ManifestPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event emitted by the download manager.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when the manifest has been loaded.
	InitDoneMsg struct {
		Images  int
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Summary download.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

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
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errors.New("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				m.events = make(chan download.ProgressEvent, 64)
				return m, tea.Batch(m.initializeDownload(), m.waitForEvent(), m.spinner.Tick)
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.imageCnt = 0
				m.err = nil
				m.doneFiles = 0
				m.failedFiles = 0
				m.totalFiles = 0
				m.receivedBytes = 0
				m.summary = download.Summary{}
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogLines {
				m.logs = m.logs[len(m.logs)-maxLogLines:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.imageCnt = msg.Images
			m.manager = msg.Manager
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		m.summary = msg.Summary
		if m.manager != nil {
			m.receivedBytes, m.doneFiles, m.failedFiles, m.totalFiles = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.receivedBytes, m.doneFiles, m.failedFiles, m.totalFiles = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) percent() float64 {
	if m.totalFiles == 0 {
		return 0
	}
	return float64(m.doneFiles+m.failedFiles) / float64(m.totalFiles)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent relays the next manager event into the update loop.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Panels Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download wallpapers listed in a media manifest"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Manifest file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+l)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading manifest..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d image(s)", m.imageCnt)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Failed: %d | Downloaded: %.2f MB",
		m.doneFiles,
		m.totalFiles,
		m.failedFiles,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Succeeded: %d\n"+
			"Failed: %d\n"+
			"Skipped: %d\n"+
			"Size: %.2f MB",
		m.summary.Succeeded,
		m.summary.Failed,
		m.summary.Skipped,
		float64(m.summary.Bytes)/1024/1024,
	))
	return box + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", describeError(m.err)))
	}

	return b.String()
}

func describeError(err error) string {
	switch {
	case errors.Is(err, panels.ErrManifestEmpty):
		return `JSON does not have a "data" property at its root.`
	case errors.Is(err, panels.ErrManifestMalformed):
		return fmt.Sprintf("Manifest is not valid: %v", err)
	default:
		return err.Error()
	}
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+l: verbose • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// initializeDownload loads the manifest and creates the manager.
func (m Model) initializeDownload() tea.Cmd {
	settings := *m.settings
	settings.ManifestPath = strings.TrimSpace(m.textInput.Value())

	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		manager := download.NewManager(&settings, forwardEvents(ctx, events))

		if err := manager.Initialize(ctx); err != nil {
			close(events)
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Images:  len(manager.Tasks()),
			Manager: manager,
		}
	}
}

// forwardEvents returns a progress callback that feeds events to the UI.
// Verbose events are dropped when the UI lags; other events wait for the UI
// until ctx is done.
func forwardEvents(ctx context.Context, events chan<- download.ProgressEvent) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose {
			select {
			case events <- event:
			default:
			}
			return
		}
		select {
		case events <- event:
		case <-ctx.Done():
		}
	}
}

// startDownload runs the downloads in the background and closes the event
// channel once the manager is done emitting.
func (m Model) startDownload() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		defer close(events)

		if manager == nil {
			return DownloadDoneMsg{Err: errors.New("no manager")}
		}

		err := manager.StartDownloads(ctx)
		return DownloadDoneMsg{Summary: manager.Summary(), Err: err}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
