// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     logviewer
// Description: Bubbletea model for browsing a guru log file
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logviewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/internal/logsink"
	"github.com/msto63/guru/internal/severity"
	"github.com/msto63/guru/pkg/core/logging"
	"github.com/msto63/guru/pkg/core/version"
)

// LevelFilter tracks which severities are shown
type LevelFilter struct {
	Info     bool
	Warn     bool
	Error    bool
	Critical bool
}

// allLevels shows every line
var allLevels = LevelFilter{Info: true, Warn: true, Error: true, Critical: true}

// Allows reports whether lines of sev pass the filter
func (f LevelFilter) Allows(sev severity.Severity) bool {
	switch sev {
	case severity.Warn:
		return f.Warn
	case severity.Error:
		return f.Error
	case severity.Critical:
		return f.Critical
	default:
		return f.Info
	}
}

// Model is the main Bubbletea model for LogViewer
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	err        error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Log state
	allLines      []logsink.Line
	filteredLines []logsink.Line
	levelFilter   LevelFilter
	searchFilter  string
	skipped       int
	counts        map[severity.Severity]int

	// Configuration
	path     string
	maxLines int
	watcher  *Watcher
	logger   *logging.Logger
}

// Config holds LogViewer configuration
type Config struct {
	Path     string
	MaxLines int

	// Search shows only lines containing this text, case-insensitive
	Search string

	// Logger receives reload diagnostics (default: discard)
	Logger *logging.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path:     logsink.DefaultPath,
		MaxLines: 1000,
	}
}

// New creates a new LogViewer model. With a nil watcher the file is only
// reloaded on demand.
func New(cfg Config, w *Watcher) Model {
	if cfg.Path == "" {
		cfg.Path = logsink.DefaultPath
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		spinner:      sp,
		loading:      true,
		levelFilter:  allLevels,
		searchFilter: cfg.Search,
		autoScroll:   true,
		counts:       make(map[severity.Severity]int),
		path:         cfg.Path,
		maxLines:     cfg.MaxLines,
		watcher:      w,
		logger:       cfg.Logger,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadLogs}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title + filter bar
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case logsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.logger.Debug("log reload failed", "path", m.path, "error", msg.err)
		} else {
			m.allLines = msg.lines
			m.skipped = msg.skipped
			m.countLines()
			m.applyFilters()
			m.updateViewportContent()
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
		}

	case fileChangedMsg:
		if !m.paused {
			m.loading = true
			cmds = append(cmds, m.loadLogs, m.spinner.Tick)
		}
		cmds = append(cmds, waitForChange(m.watcher))

	case watchErrMsg:
		m.err = msg.err
		m.logger.Warn("log watcher error", "path", m.path, "error", msg.err)
		cmds = append(cmds, waitForChange(m.watcher))
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		// Severity filters - number keys
		case "1":
			m.levelFilter.Info = !m.levelFilter.Info
		case "2":
			m.levelFilter.Warn = !m.levelFilter.Warn
		case "3":
			m.levelFilter.Error = !m.levelFilter.Error
		case "4":
			m.levelFilter.Critical = !m.levelFilter.Critical

		// Show all severities
		case "0":
			m.levelFilter = allLevels

		// Pause/Resume live reload
		case "p", " ":
			m.paused = !m.paused
			return m, nil

		// Reload
		case "r":
			m.loading = true
			return m, tea.Batch(m.loadLogs, m.spinner.Tick)

		// Auto-scroll toggle
		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
			return m, nil

		// Go to top
		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false
			return m, nil

		// Go to bottom
		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
			return m, nil

		case "q":
			return m, tea.Quit

		default:
			return m, nil
		}

		m.applyFilters()
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade LogViewer..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	b.WriteString(m.renderLogArea())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo, file and watch status
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	path := PathStyle.Render(m.path)

	var status string
	if m.watcher != nil {
		status = StatusOnlineStyle.Render(IconOnline + "Live")
	} else {
		status = StatusOfflineStyle.Render(IconOffline + "Statisch")
	}

	pauseStatus := ""
	if m.paused {
		pauseStatus = "  " + StatusPausedStyle.Render(IconPaused+"PAUSIERT")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		path,
		strings.Repeat(" ", 3),
		status,
		pauseStatus,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the severity filter bar
func (m Model) renderFilterBar() string {
	filters := []string{
		fmt.Sprintf("1:%s", RenderFilterStatus("INFO", m.levelFilter.Info)),
		fmt.Sprintf("2:%s", RenderFilterStatus("WARN", m.levelFilter.Warn)),
		fmt.Sprintf("3:%s", RenderFilterStatus("ERROR", m.levelFilter.Error)),
		fmt.Sprintf("4:%s", RenderFilterStatus("CRITICAL", m.levelFilter.Critical)),
	}

	filterStr := IconFilter + strings.Join(filters, "  ")
	countStr := HelpDescStyle.Render(fmt.Sprintf("[%d/%d Zeilen]", len(m.filteredLines), len(m.allLines)))

	scrollStr := ""
	if m.autoScroll {
		scrollStr = "  " + FilterActiveStyle.Render("[Auto-Scroll]")
	}

	content := filterStr + "  " + countStr + scrollStr

	return FilterBarStyle.Width(m.width - 2).Render(content)
}

// renderLogArea renders the main log viewport
func (m Model) renderLogArea() string {
	style := LogPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2)
	return style.Render(m.viewport.View())
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	leftPart := HelpDescStyle.Render(fmt.Sprintf("W:%d E:%d C:%d",
		m.counts[severity.Warn], m.counts[severity.Error], m.counts[severity.Critical]))
	if m.skipped > 0 {
		leftPart += HelpDescStyle.Render(fmt.Sprintf("  (%d unlesbar)", m.skipped))
	}

	centerPart := HelpDescStyle.Render("v" + version.LogViewer)

	var rightPart string
	switch {
	case m.loading:
		rightPart = m.spinner.View() + " Lade..."
	case m.err != nil:
		rightPart = StatusOfflineStyle.Render(m.err.Error())
	default:
		rightPart = StatusOnlineStyle.Render("OK")
	}

	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	availableSpace := m.width - leftLen - centerLen - rightLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-4", "Schwere"),
		RenderKeyHint("0", "Alle"),
		RenderKeyHint("p", "Pause"),
		RenderKeyHint("r", "Neu laden"),
		RenderKeyHint("a", "AutoScroll"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("q", "Beenden"),
	}

	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with filtered lines
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, l := range m.filteredLines {
		timeStr := LogTimestampStyle.Render(l.Time)
		badge := RenderLevelBadge(l.Severity)

		msgStyle := LogMessageStyle
		if isTraceLine(l) {
			msgStyle = LogTraceStyle
		}

		content.WriteString(fmt.Sprintf("%s %s %s", timeStr, badge, msgStyle.Render(l.Text)))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// applyFilters filters lines based on current filter settings
func (m *Model) applyFilters() {
	m.filteredLines = make([]logsink.Line, 0, len(m.allLines))
	search := strings.ToLower(m.searchFilter)

	for _, l := range m.allLines {
		if !m.levelFilter.Allows(l.Severity) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Text), search) {
			continue
		}
		m.filteredLines = append(m.filteredLines, l)
	}
}

// countLines tallies lines per severity
func (m *Model) countLines() {
	m.counts = make(map[severity.Severity]int)
	for _, l := range m.allLines {
		m.counts[l.Severity]++
	}
}

// loadLogs reads the log file
func (m Model) loadLogs() tea.Msg {
	lines, skipped, err := Load(m.path, m.maxLines)
	return logsLoadedMsg{lines: lines, skipped: skipped, err: err}
}

// waitForChange blocks until the watcher reports a change
func waitForChange(w *Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		case err := <-w.Errors():
			return watchErrMsg{err: err}
		}
	}
}

// isTraceLine reports whether l belongs to a halt stack trace
func isTraceLine(l logsink.Line) bool {
	if l.Severity != severity.Info {
		return false
	}
	if l.Text == halt.TraceHeader {
		return true
	}
	i := strings.Index(l.Text, ": ")
	if i <= 0 {
		return false
	}
	for _, r := range l.Text[:i] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Filtered returns the lines currently shown
func (m Model) Filtered() []logsink.Line {
	return m.filteredLines
}

// Run starts the LogViewer TUI. With live set the file is watched and
// reloaded on every change.
func Run(cfg Config, live bool) error {
	var w *Watcher
	if live {
		var err error
		w, err = Watch(cfg.Path)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	p := tea.NewProgram(New(cfg, w), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
