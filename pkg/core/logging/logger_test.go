package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func newBufferLogger(format string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Name: "test", Level: "debug", Format: format, Output: &buf})
	l.now = func() time.Time { return time.Date(2026, 10, 16, 10, 11, 12, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Text(t *testing.T) {
	l, buf := newBufferLogger("text")
	l.Info("config loaded", "path", "guru.toml", "weights", 3)

	want := "10:11:12 INFO [test] config loaded path=guru.toml weights=3\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newBufferLogger("json")
	l.WithField("component", "journal").Error("insert failed", "error", errors.New("disk full"))

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if data["level"] != "error" || data["message"] != "insert failed" {
		t.Errorf("data = %v", data)
	}
	if data["component"] != "journal" || data["error"] != "disk full" {
		t.Errorf("fields = %v", data)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	l, buf := newBufferLogger("text")
	l = l.WithLevel(LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("filtered lines written: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}

func TestLogger_WithFieldsDoesNotLeak(t *testing.T) {
	l, buf := newBufferLogger("text")
	child := l.WithFields(Fields{"a": 1})

	l.Info("parent")
	if strings.Contains(buf.String(), "a=1") {
		t.Errorf("child field leaked into parent: %q", buf.String())
	}
	buf.Reset()

	child.Info("child")
	if !strings.Contains(buf.String(), "a=1") {
		t.Errorf("child field missing: %q", buf.String())
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	l, buf := newBufferLogger("text")
	l.Info("odd", "key1", "value1", 42, "x", "dangling")

	if !strings.Contains(buf.String(), "key1=value1") {
		t.Errorf("output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "dangling") {
		t.Errorf("dangling key written: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
