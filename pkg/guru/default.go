package guru

import (
	"sync"
)

var (
	stdMu sync.RWMutex
	std   = New()
)

// Default returns the process-wide reporter used by the package functions
func Default() *Reporter {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetDefault replaces the process-wide reporter
func SetDefault(r *Reporter) {
	if r == nil {
		return
	}
	stdMu.Lock()
	defer stdMu.Unlock()
	std = r
}

// Open opens the default reporter's log
func Open(path string) error { return Default().Open(path) }

// Close closes the default reporter
func Close() error { return Default().Close() }

// ConsoleReady tells the default reporter whether the halt screen can render
func ConsoleReady(ready bool) { Default().ConsoleReady(ready) }

// AssertOrHalt halts the default reporter when cond is false
func AssertOrHalt(cond bool, message string) { Default().AssertOrHalt(cond, message) }

// Report halts the default reporter
func Report(message string, sev Severity) { Default().Report(message, sev) }

// Reportf formats the message and halts the default reporter
func Reportf(format string, sev Severity, args ...interface{}) {
	Default().Reportf(format, sev, args...)
}

// ReportNonFatal reports a non-fatal error to the default reporter
func ReportNonFatal(message string, sev Severity) { Default().ReportNonFatal(message, sev) }

// ReportNonFatalf formats and reports a non-fatal error to the default reporter
func ReportNonFatalf(format string, sev Severity, args ...interface{}) {
	Default().ReportNonFatalf(format, sev, args...)
}

// Halt halts the default reporter
func Halt(message string) { Default().Halt(message) }

// Haltf formats the message and halts the default reporter
func Haltf(format string, args ...interface{}) { Default().Haltf(format, args...) }

// HaltError halts the default reporter with the text of err
func HaltError(err error) { Default().HaltError(err) }

// Log writes a line to the default reporter's log
func Log(message string, sev Severity) { Default().Log(message, sev) }

// Logf formats and writes a line to the default reporter's log
func Logf(format string, sev Severity, args ...interface{}) { Default().Logf(format, sev, args...) }

// Enter pushes a frame label on the default reporter's stack
func Enter(label string) func() { return Default().Enter(label) }

// Recover turns a panic into a halt of the default reporter. It must be
// deferred directly.
func Recover() {
	if v := recover(); v != nil {
		Default().haltPanic(v)
	}
}
