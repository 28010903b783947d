// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     console
// Description: Halt presenter for plain console programs
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Presenter prints the banner and the message and returns immediately.
// Console programs have nothing to dismiss.
type Presenter struct {
	out    io.Writer
	banner lipgloss.Style
	text   lipgloss.Style
}

// New creates a presenter writing to out, or stderr when out is nil
func New(out io.Writer) *Presenter {
	if out == nil {
		out = os.Stderr
	}
	r := lipgloss.NewRenderer(out)
	return &Presenter{
		out:    out,
		banner: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		text:   r.NewStyle().Foreground(lipgloss.Color("#F8FAFC")),
	}
}

// Present writes the halt screen as two lines
func (p *Presenter) Present(_ context.Context, banner, message string) error {
	if _, err := fmt.Fprintln(p.out, p.banner.Render(banner)); err != nil {
		return fmt.Errorf("console: write banner: %w", err)
	}
	if _, err := fmt.Fprintln(p.out, p.text.Render(message)); err != nil {
		return fmt.Errorf("console: write message: %w", err)
	}
	return nil
}

// Teardown does nothing
func (p *Presenter) Teardown() error {
	return nil
}
