package haltscreen

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Presenter shows the halt screen with bubbletea. It owns the terminal until
// the user presses Esc or Enter, or forces the exit with Ctrl+C.
type Presenter struct {
	opts   []tea.ProgramOption
	result Model
}

// New creates a presenter using the alternate screen. Extra program options
// are appended, tests use them to replace input and output.
func New(opts ...tea.ProgramOption) *Presenter {
	return &Presenter{
		opts: append([]tea.ProgramOption{tea.WithAltScreen()}, opts...),
	}
}

// Present blocks until the halt screen is dismissed
func (p *Presenter) Present(ctx context.Context, banner, message string) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	prog := tea.NewProgram(NewModel(banner, message), opts...)

	final, err := prog.Run()
	if m, ok := final.(Model); ok {
		p.result = m
	}
	if err != nil {
		return fmt.Errorf("haltscreen: run: %w", err)
	}
	return nil
}

// Teardown has nothing to release: bubbletea restores the terminal when
// the program ends.
func (p *Presenter) Teardown() error {
	return nil
}

// Result returns the final model of the last presentation
func (p *Presenter) Result() Model {
	return p.result
}
