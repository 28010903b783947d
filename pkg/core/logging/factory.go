// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     logging
// Description: Logger construction and output
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "text" or "json" (default: text)
	Format string

	// Output writer (default: stderr)
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// Logger writes leveled diagnostic lines
type Logger struct {
	name   string
	level  Level
	format Format
	output io.Writer
	fields Fields
	mu     *sync.Mutex
	now    func() time.Time
}

// NewLogger creates a logger from configuration
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		name:   cfg.Name,
		level:  ParseLevel(cfg.Level),
		format: ParseFormat(cfg.Format),
		output: out,
		fields: make(Fields),
		mu:     &sync.Mutex{},
		now:    time.Now,
	}
}

// New creates a text logger at info level writing to stderr
func New(name string) *Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	cfg := DefaultLoggerConfig("")
	cfg.Output = io.Discard
	cfg.Level = "error"
	return NewLogger(cfg)
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = make(Fields, len(l.fields))
	for k, v := range l.fields {
		c.fields[k] = v
	}
	return &c
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithField returns a new logger that adds key to every line
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a new logger that adds fields to every line
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *Logger) log(level Level, msg string, keysAndValues []interface{}) {
	if level < l.level {
		return
	}

	fields := toFields(keysAndValues...)
	for k, v := range l.fields {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}

	var line string
	if l.format == FormatJSON {
		line = l.formatJSON(level, msg, fields)
	} else {
		line = l.formatText(level, msg, fields)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.output, line+"\n")
}

func (l *Logger) formatText(level Level, msg string, fields Fields) string {
	var b strings.Builder
	b.WriteString(l.now().Format("15:04:05"))
	b.WriteString(" ")
	b.WriteString(strings.ToUpper(level.String()))
	if l.name != "" {
		b.WriteString(" [" + l.name + "]")
	}
	b.WriteString(" " + msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

func (l *Logger) formatJSON(level Level, msg string, fields Fields) string {
	data := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}
	data["timestamp"] = l.now().Format(time.RFC3339)
	data["level"] = level.String()
	data["message"] = msg
	if l.name != "" {
		data["logger"] = l.name
	}

	out, err := json.Marshal(data)
	if err != nil {
		return l.formatText(level, msg, fields)
	}
	return string(out)
}

// toFields converts key-value pairs to Fields
func toFields(keysAndValues ...interface{}) Fields {
	fields := make(Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
