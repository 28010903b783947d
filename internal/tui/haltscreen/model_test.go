package haltscreen

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const banner = "Software Failure, Halting Execution"

func TestViewShowsBannerAndMessage(t *testing.T) {
	m := NewModel(banner, "Cascade failure detected!")
	view := m.View()

	if !strings.Contains(view, banner) {
		t.Errorf("banner missing in view:\n%s", view)
	}
	if !strings.Contains(view, "Cascade failure detected!") {
		t.Errorf("message missing in view:\n%s", view)
	}
}

func TestDismissKeys(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		dismissed bool
		forced    bool
	}{
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := NewModel(banner, "x").Update(tt.key)
			m := updated.(Model)
			if m.Dismissed() != tt.dismissed || m.Forced() != tt.forced {
				t.Errorf("dismissed = %v, forced = %v", m.Dismissed(), m.Forced())
			}
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if m.View() != "" {
				t.Error("view should be empty after leaving")
			}
		})
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	updated, cmd := NewModel(banner, "x").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m := updated.(Model)
	if m.Dismissed() || m.Forced() || cmd != nil {
		t.Error("plain key should not leave the halt screen")
	}
}

func TestBlinkToggles(t *testing.T) {
	m := NewModel(banner, "x")
	updated, cmd := m.Update(tickMsg(time.Now()))
	if updated.(Model).lit {
		t.Error("first tick should darken the frame")
	}
	if cmd == nil {
		t.Error("blink should reschedule")
	}
	updated, _ = updated.Update(tickMsg(time.Now()))
	if !updated.(Model).lit {
		t.Error("second tick should light the frame")
	}
}

func TestWindowSizeCentres(t *testing.T) {
	updated, _ := NewModel(banner, "x").Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := updated.(Model).View()
	if lines := strings.Split(view, "\n"); len(lines) != 24 {
		t.Errorf("placed view has %d lines, want 24", len(lines))
	}
}

func TestPresenterBlocksUntilEnter(t *testing.T) {
	var out bytes.Buffer
	p := New(tea.WithInput(strings.NewReader("\r")), tea.WithOutput(&out))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.Present(ctx, banner, "disk on fire"); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if !p.Result().Dismissed() {
		t.Error("screen not dismissed")
	}
	if err := p.Teardown(); err != nil {
		t.Errorf("Teardown() error = %v", err)
	}
}
