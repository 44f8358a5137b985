// Package tui provides a Bubble Tea terminal user interface for tunetidy.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tunetidy/internal/catalog"
	"tunetidy/internal/config"
	"tunetidy/internal/metrics"
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

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   catalog.ProgressLevel
}

// logBuffer collects progress events from the pipeline goroutine. The
// TUI drains it on each tick instead of receiving events directly.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (b *logBuffer) add(event catalog.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, LogEntry{Message: event.Message, Level: event.Level})
}

func (b *logBuffer) drain() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.entries
	b.entries = nil
	return entries
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Pipeline context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline manager reference
	manager *catalog.Manager
	events  *logBuffer

	// Stage progress
	stage      catalog.Stage
	stageDone  int32
	stageTotal int32

	// Options
	organize bool
	apply    bool
	copyMode bool
	enrich   bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/music/library"
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
		settings:  config.DefaultSettings(),
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
	// RunDoneMsg is sent when the pipeline finishes.
	RunDoneMsg struct {
		Err error
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
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
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
			if m.state == StateRunning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateRunning
				run := m.prepareRun()
				return m, tea.Batch(run, m.spinner.Tick, m.tickProgress())
			}

		case "o":
			if m.state == StateInput {
				m.organize = !m.organize
			}

		case "a":
			if m.state == StateInput {
				m.apply = !m.apply
			}

		case "c":
			if m.state == StateInput {
				m.copyMode = !m.copyMode
			}

		case "e":
			if m.state == StateInput {
				m.enrich = !m.enrich
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.manager = nil
				m.events = nil
				m.stage = catalog.StageIdle
				m.stageDone = 0
				m.stageTotal = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case RunDoneMsg:
		m.drainEvents()
		m.pollProgress()
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.state == StateRunning {
			m.drainEvents()
			m.pollProgress()

			var percent float64
			if m.stageTotal > 0 {
				percent = float64(m.stageDone) / float64(m.stageTotal)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
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

// drainEvents pulls buffered pipeline events into the visible log.
func (m *Model) drainEvents() {
	if m.events == nil {
		return
	}
	for _, entry := range m.events.drain() {
		if entry.Level == catalog.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, entry)
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// pollProgress reads the stage counters from the manager.
func (m *Model) pollProgress() {
	if m.manager == nil {
		return
	}
	m.stage, m.stageDone, m.stageTotal = m.manager.GetProgress()
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("tunetidy"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Catalog and organize local music libraries"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
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

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter music library path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Organize into Artist/Album (o)\n", checkbox(m.organize)))
	b.WriteString(fmt.Sprintf("  %s Apply changes, not a dry run (a)\n", checkbox(m.apply)))
	b.WriteString(fmt.Sprintf("  %s Copy instead of move (c)\n", checkbox(m.copyMode)))
	b.WriteString(fmt.Sprintf("  %s Enrich from MusicBrainz (e)\n", checkbox(m.enrich)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Stage: %s", m.stage)))
	b.WriteString("\n\n")

	var percent float64
	if m.stageTotal > 0 {
		percent = float64(m.stageDone) / float64(m.stageTotal)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Progress: %d/%d", m.stageDone, m.stageTotal)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	summary, stats := m.manager.Summary()
	lines := []string{
		"Run Complete!",
		"",
		fmt.Sprintf("Tracks:  %d", summary.TotalTracks),
		fmt.Sprintf("Size:    %s", metrics.HumanSize(summary.TotalSizeBytes)),
		fmt.Sprintf("Artists: %d", summary.UniqueArtists),
		fmt.Sprintf("Albums:  %d", summary.UniqueAlbums),
	}
	if m.organize {
		out := m.manager.OrganizeOutcome()
		lines = append(lines,
			"",
			fmt.Sprintf("Moved:    %d", out.Moved),
			fmt.Sprintf("Skipped:  %d", out.Skipped),
			fmt.Sprintf("Sidecars: %d", out.SidecarMoved),
		)
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if len(stats) > 0 {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("Format distribution (% by size):"))
		b.WriteString("\n")
		for _, stat := range stats {
			b.WriteString(formatStyle.Render(fmt.Sprintf("  %s: %v%% (%s)", stat.Ext, stat.Percent, metrics.HumanSize(stat.SizeBytes))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case catalog.LevelError:
			style = errorStyle
			prefix = "✗"
		case catalog.LevelWarning:
			style = warningStyle
			prefix = "!"
		case catalog.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case catalog.LevelInfo:
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
		return "enter: start • o: organize • a: apply • c: copy • e: enrich • v: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// prepareRun builds the manager from the selected options and returns
// the command that runs the pipeline in the background.
func (m *Model) prepareRun() tea.Cmd {
	root := m.textInput.Value()

	settings := config.DefaultSettings()
	settings.Organize = m.organize
	settings.Apply = m.apply
	settings.CopyInsteadOfMove = m.copyMode
	settings.Enrich = m.enrich
	settings.Verbose = m.verbose

	events := &logBuffer{}
	manager := catalog.NewManager(settings, events.add)

	m.settings = settings
	m.manager = manager
	m.events = events

	ctx := m.ctx
	return func() tea.Msg {
		return RunDoneMsg{Err: manager.Run(ctx, root)}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
