// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     severity
// Description: Severity levels shared by the log sink, the cascade detector
//              and the public reporter API
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package severity

// Severity represents the severity of a logged or reported message
type Severity int

const (
	// Info is general logging information
	Info Severity = iota

	// Warn is a warning, non-fatal
	Warn

	// Error is a serious error
	Error

	// Critical is a critical system failure
	Critical

	// StackFrame tags stack trace lines written during a halt.
	// It is never reported by application code.
	StackFrame
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Critical:
		return "critical"
	case StackFrame:
		return "stack"
	default:
		return "unknown"
	}
}

// Tag returns the tag written in front of a log line, without brackets.
// Info and StackFrame lines carry no tag.
func (s Severity) Tag() string {
	switch s {
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return ""
	}
}

// IsNonFatal reports whether the severity may be passed to a non-fatal report
func (s Severity) IsNonFatal() bool {
	return s == Warn || s == Error || s == Critical
}

// FromTag maps a log tag back to a severity. Untagged lines are Info.
func FromTag(tag string) (Severity, bool) {
	switch tag {
	case "":
		return Info, true
	case "WARN":
		return Warn, true
	case "ERROR":
		return Error, true
	case "CRITICAL":
		return Critical, true
	default:
		return Info, false
	}
}

// Parse converts a configuration string to a severity
func Parse(s string) (Severity, bool) {
	switch s {
	case "info":
		return Info, true
	case "warn", "warning":
		return Warn, true
	case "error":
		return Error, true
	case "critical":
		return Critical, true
	default:
		return Info, false
	}
}
