package logsink

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msto63/guru/internal/severity"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 9, 5, 7, 900, time.Local)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestOpenWriteClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	s := New(WithClock(fixedClock))

	if err := s.Open(path); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Write(severity.Info, "X")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := readLines(t, path)
	want := []string{
		"[09:05:07] Guru error-handling system is online.",
		"[09:05:07] X",
		"[09:05:07] Guru system shutting down.",
		"[09:05:07] The rest is silence.",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpenTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("old content\nmore\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(WithClock(fixedClock))
	if err := s.Open(path); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.HasSuffix(lines[0], OnlineMessage) {
		t.Errorf("after Open lines = %q", lines)
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		sev  severity.Severity
		want string
	}{
		{severity.Info, "[09:05:07] msg"},
		{severity.Warn, "[09:05:07] [WARN] msg"},
		{severity.Error, "[09:05:07] [ERROR] msg"},
		{severity.Critical, "[09:05:07] [CRITICAL] msg"},
		{severity.StackFrame, "[09:05:07] msg"},
	}

	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			if got := Format(fixedClock(), tt.sev, "msg"); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepeatSuppression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	s := New(WithClock(fixedClock))
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}

	s.Write(severity.Warn, "disk slow")
	s.Write(severity.Warn, "disk slow")
	s.Write(severity.Error, "disk slow")
	s.Write(severity.Info, "other")
	s.Write(severity.Warn, "disk slow")
	s.Close()

	count := 0
	for _, l := range readLines(t, path) {
		if strings.HasSuffix(l, "disk slow") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("disk slow lines = %d, want 2", count)
	}
}

func TestWriteBeforeOpenAndAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	s := New(WithClock(fixedClock))

	s.Write(severity.Critical, "too early")
	if s.IsOpen() {
		t.Fatal("sink open before Open()")
	}

	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s.Write(severity.Critical, "too late")

	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Open(path); !errors.Is(err, ErrClosed) {
		t.Errorf("Open() after Close() error = %v, want ErrClosed", err)
	}

	for _, l := range readLines(t, path) {
		if strings.Contains(l, "too") {
			t.Errorf("unexpected line %q", l)
		}
	}
	if len(readLines(t, path)) != 3 {
		t.Errorf("lines = %q", readLines(t, path))
	}
}

func TestOpenTwice(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	s := New(WithClock(fixedClock))
	if err := s.Open(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Open(second); err != nil {
		t.Errorf("second Open() error = %v", err)
	}
	defer s.Close()

	if s.Path() != first {
		t.Errorf("Path() = %q, want %q", s.Path(), first)
	}
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Errorf("second file should not exist, stat err = %v", err)
	}
}

func TestOpenFailure(t *testing.T) {
	s := New()
	err := s.Open(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"))
	if err == nil {
		t.Fatal("Open() into missing directory should fail")
	}
	if s.IsOpen() {
		t.Error("sink open after failed Open()")
	}
	s.Write(severity.Warn, "ignored")
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		raw     string
		want    Line
		wantErr bool
	}{
		{"[09:05:07] hello", Line{"09:05:07", severity.Info, "hello"}, false},
		{"[09:05:07] [WARN] disk slow", Line{"09:05:07", severity.Warn, "disk slow"}, false},
		{"[09:05:07] [CRITICAL] Cascade failure detected!", Line{"09:05:07", severity.Critical, "Cascade failure detected!"}, false},
		{"[09:05:07] [note] kept", Line{"09:05:07", severity.Info, "[note] kept"}, false},
		{"[09:05:07] 0: main.run\n", Line{"09:05:07", severity.Info, "0: main.run"}, false},
		{"garbage", Line{}, true},
		{"", Line{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLine(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
