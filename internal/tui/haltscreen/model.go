// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     haltscreen
// Description: Bubbletea model for the blinking halt screen
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package haltscreen

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BlinkInterval is the period of the frame blink
const BlinkInterval = 500 * time.Millisecond

// tickMsg drives the blink
type tickMsg time.Time

// Model shows the banner and message until dismissed
type Model struct {
	banner  string
	message string

	width  int
	height int
	lit    bool

	dismissed bool
	forced    bool
}

// NewModel creates the halt screen model
func NewModel(banner, message string) Model {
	return Model{
		banner:  banner,
		message: message,
		lit:     true,
	}
}

// Init starts the blink
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.HideCursor, blink())
}

func blink() tea.Cmd {
	return tea.Tick(BlinkInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.dismissed = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.forced = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.dismissed || m.forced {
			return m, nil
		}
		m.lit = !m.lit
		return m, blink()
	}

	return m, nil
}

// View renders the box centred in the terminal
func (m Model) View() string {
	if m.dismissed || m.forced {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(BannerStyle.Render(m.banner))
	b.WriteString("\n\n")
	b.WriteString(MessageStyle.Render(m.message))

	style := BoxStyle
	if !m.lit {
		style = BoxDarkStyle
	}
	box := lipgloss.JoinVertical(lipgloss.Center,
		style.Render(b.String()),
		HintStyle.Render("Esc: beenden"),
	)

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Dismissed reports whether the user acknowledged the screen
func (m Model) Dismissed() bool {
	return m.dismissed
}

// Forced reports whether the screen was left with Ctrl+C
func (m Model) Forced() bool {
	return m.forced
}
