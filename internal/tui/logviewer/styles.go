// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     logviewer
// Description: Styles for the LogViewer TUI
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/guru/internal/severity"
)

// Color Palette, shared with the halt screen
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	// Background colors
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	// Text colors
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500

	// Severity colors
	ColorInfo     = lipgloss.Color("#06B6D4") // Cyan
	ColorCritical = lipgloss.Color("#DC2626") // Dark Red
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Log entry styles
var (
	LogTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	LogMessageStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	LogTraceStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Severity-specific styles
	LogLevelInfoStyle = lipgloss.NewStyle().
				Foreground(ColorInfo).
				Bold(true)

	LogLevelWarnStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	LogLevelErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	LogLevelCriticalStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Background(lipgloss.Color("#450A0A")).
				Bold(true)
)

// Panel/Box styles
var (
	LogPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusOfflineStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Filter badge styles
var (
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Title panel style
var (
	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Icons
const (
	IconOnline  = "  "
	IconOffline = "  "
	IconPaused  = "  "
	IconFilter  = "  "
)

// Logo
const Logo = "guru LogViewer"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderLevelBadge renders a severity badge with appropriate styling
func RenderLevelBadge(sev severity.Severity) string {
	switch sev {
	case severity.Warn:
		return LogLevelWarnStyle.Render("[WARN]    ")
	case severity.Error:
		return LogLevelErrorStyle.Render("[ERROR]   ")
	case severity.Critical:
		return LogLevelCriticalStyle.Render("[CRITICAL]")
	default:
		return LogLevelInfoStyle.Render("          ")
	}
}

// RenderFilterStatus renders a filter status indicator
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}
