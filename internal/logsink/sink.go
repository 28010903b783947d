// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     logsink
// Description: Append-only, timestamped log file with immediate-repeat
//              suppression
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logsink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/msto63/guru/internal/severity"
)

// DefaultPath is used when Open is called with an empty path
const DefaultPath = "log.txt"

// Fixed lines written on open and close
const (
	OnlineMessage   = "Guru error-handling system is online."
	ShutdownMessage = "Guru system shutting down."
	FarewellMessage = "The rest is silence."
)

// timeLayout renders the wall clock truncated to seconds
const timeLayout = "15:04:05"

// ErrClosed is returned by Open once the sink has been closed
var ErrClosed = errors.New("logsink: sink already closed")

// Option configures a Sink
type Option func(*Sink)

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.now = now }
}

// Sink writes formatted log lines to a file. Writes before Open and after
// Close are silently dropped.
type Sink struct {
	mu      sync.Mutex
	out     io.WriteCloser
	path    string
	last    string
	hasLast bool
	closed  bool
	err     error
	now     func() time.Time
}

// New creates a closed sink
func New(opts ...Option) *Sink {
	s := &Sink{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open truncates or creates the log file and writes the online line.
// Opening an already open sink does nothing.
func (s *Sink) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		return nil
	}
	if s.closed {
		return ErrClosed
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("logsink: open %s: %w", path, err)
	}

	s.out = f
	s.path = path
	s.writeLocked(severity.Info, OnlineMessage)
	return nil
}

// Write appends one line. Text identical to the previously accepted text is
// dropped.
func (s *Sink) Write(sev severity.Severity, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(sev, text)
}

func (s *Sink) writeLocked(sev severity.Severity, text string) {
	if s.out == nil {
		return
	}
	if s.hasLast && text == s.last {
		return
	}
	s.last = text
	s.hasLast = true

	line := Format(s.now(), sev, text)
	if _, err := io.WriteString(s.out, line+"\n"); err != nil && s.err == nil {
		s.err = fmt.Errorf("logsink: write %s: %w", s.path, err)
	}
}

// Close writes the farewell lines and releases the file. Later calls do
// nothing.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		return nil
	}
	s.writeLocked(severity.Info, ShutdownMessage)
	s.writeLocked(severity.Info, FarewellMessage)

	err := s.out.Close()
	s.out = nil
	s.closed = true
	if err != nil {
		return fmt.Errorf("logsink: close %s: %w", s.path, err)
	}
	return nil
}

// IsOpen reports whether lines are currently accepted
func (s *Sink) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out != nil
}

// Path returns the path of the current or last opened file
func (s *Sink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Err returns the first write error, if any. Write itself never fails.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Format renders a single log line without the trailing newline
func Format(ts time.Time, sev severity.Severity, text string) string {
	stamp := "[" + ts.Format(timeLayout) + "] "
	if tag := sev.Tag(); tag != "" {
		return stamp + "[" + tag + "] " + text
	}
	return stamp + text
}
