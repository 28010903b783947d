// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     haltscreen
// Description: Styles for the halt screen
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package haltscreen

import (
	"github.com/charmbracelet/lipgloss"
)

// Box geometry of the classic guru meditation window
const (
	BoxWidth  = 41
	BoxHeight = 7
)

// Color Palette - shared with the log viewer
var (
	ColorAlert  = lipgloss.Color("#EF4444") // Red
	ColorDimmed = lipgloss.Color("#450A0A") // Dark Red
	ColorText   = lipgloss.Color("#F8FAFC") // Slate 50
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
	ColorBg     = lipgloss.Color("#000000")
)

var (
	// BoxStyle is the lit frame
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorAlert).
			Width(BoxWidth - 2).
			Height(BoxHeight - 2).
			Align(lipgloss.Center)

	// BoxDarkStyle is the frame during the off phase of the blink
	BoxDarkStyle = BoxStyle.
			BorderForeground(ColorDimmed)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorAlert).
			Bold(true)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorAlert)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)
