// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     guru
// Description: Reporter composing log sink, call stack, cascade detector,
//              halt controller and signal bridge
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package guru

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/msto63/guru/internal/callstack"
	"github.com/msto63/guru/internal/cascade"
	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/internal/logsink"
	"github.com/msto63/guru/internal/signals"
	"github.com/msto63/guru/pkg/core/logging"
)

// Fixed report texts
const (
	CascadeMessage           = "Cascade failure detected!"
	IncorrectSeverityMessage = "Nonfatal error reported with incorrect severity specified."
)

// Reporter owns one instance of every reporting component. Its methods are
// safe for concurrent use.
type Reporter struct {
	path    string
	now     func() time.Time
	signals bool
	logger  *logging.Logger

	sink     *logsink.Sink
	stack    *callstack.Stack
	detector *cascade.Detector
	halter   *halt.Controller
	bridge   *signals.Bridge

	mu      sync.Mutex
	closers []io.Closer
}

// New creates a reporter. Nothing is written until Open.
func New(opts ...Option) *Reporter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Reporter{
		path:     o.path,
		now:      o.now,
		signals:  o.signals,
		logger:   o.logger,
		sink:     logsink.New(logsink.WithClock(o.now)),
		stack:    callstack.New(),
		detector: cascade.New(o.cascade),
	}

	haltOpts := []halt.Option{
		halt.WithClock(o.now),
		halt.WithDisplayWidth(o.width),
	}
	if o.presenter != nil {
		haltOpts = append(haltOpts, halt.WithPresenter(o.presenter))
	}
	if o.recorder != nil {
		haltOpts = append(haltOpts, halt.WithRecorder(o.recorder))
	}
	if o.exit != nil {
		haltOpts = append(haltOpts, halt.WithExit(o.exit))
	}
	r.halter = halt.New(r.sink, r.stack, haltOpts...)
	r.bridge = signals.New(r.halter)

	return r
}

// Open opens the log file, starts the first cascade window and installs the
// fatal signal handlers. An empty path uses the configured path or
// log.txt. Opening an open reporter does nothing.
func (r *Reporter) Open(path string) error {
	if r.sink.IsOpen() {
		return nil
	}
	if path == "" {
		path = r.path
	}
	if err := r.sink.Open(path); err != nil {
		return err
	}
	r.detector.Start(r.now())

	if r.signals {
		if err := r.bridge.Install(); err != nil {
			return err
		}
	}

	r.logger.Debug("guru log opened", "path", r.sink.Path(), "signals", r.signals)
	return nil
}

// Close writes the farewell lines, releases the signal handlers and closes
// resources owned by the reporter, such as a journal opened from config.
//
// If a halt is in progress, for example one started by the signal bridge on
// its own goroutine, Close leaves the log to the halt and blocks until the
// halt has exited the process.
func (r *Reporter) Close() error {
	if r.halter.State() != halt.Idle {
		<-r.halter.Done()
		r.bridge.Stop()
		return r.releaseOwned()
	}

	r.bridge.Stop()

	errs := []error{r.sink.Close(), r.releaseOwned()}
	if err := r.sink.Err(); err != nil {
		r.logger.Warn("guru log incomplete", "error", err)
	}
	return errors.Join(errs...)
}

// releaseOwned closes the resources registered with own
func (r *Reporter) releaseOwned() error {
	var errs []error

	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// own registers a resource released by Close
func (r *Reporter) own(c io.Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, c)
}

// ConsoleReady tells the reporter whether the halt screen can render
func (r *Reporter) ConsoleReady(ready bool) {
	r.halter.ConsoleReady(ready)
}

// SetPresenter replaces the halt screen, e.g. once the UI is up
func (r *Reporter) SetPresenter(p Presenter) {
	r.halter.SetPresenter(p)
}

// AssertOrHalt halts with message when cond is false
func (r *Reporter) AssertOrHalt(cond bool, message string) {
	if cond {
		return
	}
	r.halter.HaltWith(halt.KindAssert, message)
}

// Report halts unconditionally. The halt is always logged as critical,
// whatever sev says.
func (r *Reporter) Report(message string, sev Severity) {
	r.halter.HaltWith(halt.KindHalt, message)
}

// Reportf formats the message and halts
func (r *Reporter) Reportf(format string, sev Severity, args ...interface{}) {
	r.Report(fmt.Sprintf(format, args...), sev)
}

// ReportNonFatal logs the message and feeds its severity to the cascade
// detector. Once a cascade has been detected further reports are dropped.
// It always returns, except when a cascade halts the program.
func (r *Reporter) ReportNonFatal(message string, sev Severity) {
	if r.detector.Tripped() {
		return
	}

	if !sev.IsNonFatal() {
		r.ReportNonFatal(IncorrectSeverityMessage, Warn)
		r.sink.Write(sev, message)
		return
	}

	r.sink.Write(sev, message)

	tripped, err := r.detector.Report(sev, r.now())
	if err != nil {
		r.logger.Warn("cascade report rejected", "severity", sev.String(), "error", err)
		return
	}
	if tripped {
		r.halter.HaltWith(halt.KindCascade, CascadeMessage)
	}
}

// ReportNonFatalf formats the message and reports it as non-fatal
func (r *Reporter) ReportNonFatalf(format string, sev Severity, args ...interface{}) {
	r.ReportNonFatal(fmt.Sprintf(format, args...), sev)
}

// Halt logs message with a stack trace, shows the halt screen and exits
func (r *Reporter) Halt(message string) {
	r.halter.Halt(message)
}

// Haltf formats the message and halts
func (r *Reporter) Haltf(format string, args ...interface{}) {
	r.halter.Halt(fmt.Sprintf(format, args...))
}

// HaltError halts with the text of err
func (r *Reporter) HaltError(err error) {
	r.halter.HaltError(err)
}

// Log writes a line to the log without any cascade accounting
func (r *Reporter) Log(message string, sev Severity) {
	r.sink.Write(sev, message)
}

// Logf formats the message and logs it
func (r *Reporter) Logf(format string, sev Severity, args ...interface{}) {
	r.sink.Write(sev, fmt.Sprintf(format, args...))
}

// Enter pushes a frame label for halt traces and returns the function that
// pops it:
//
//	defer r.Enter("world.Load")()
func (r *Reporter) Enter(label string) func() {
	return r.stack.Enter(label)
}

// Recover turns a panic into a halt. It must be deferred directly:
//
//	defer r.Recover()
func (r *Reporter) Recover() {
	if v := recover(); v != nil {
		r.haltPanic(v)
	}
}

func (r *Reporter) haltPanic(v interface{}) {
	r.halter.HaltWith(halt.KindPanic, fmt.Sprintf("Runtime panic: %v", v))
}

// CascadeTripped reports whether a cascade failure has been detected
func (r *Reporter) CascadeTripped() bool {
	return r.detector.Tripped()
}

// Halted reports whether a halt has started
func (r *Reporter) Halted() bool {
	return r.halter.State() != halt.Idle
}

// Done is closed once a halt has run its exit. With the default exit it is
// never closed, so a goroutine waiting on it stays parked until the process
// ends.
func (r *Reporter) Done() <-chan struct{} {
	return r.halter.Done()
}

// SignalsEnabled reports whether Open hooks the fatal signals
func (r *Reporter) SignalsEnabled() bool {
	return r.signals
}

// LogPath returns the path of the open or last opened log file
func (r *Reporter) LogPath() string {
	return r.sink.Path()
}
