// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     halt
// Description: Terminal failure orchestration: reentrancy latch, crash log,
//              halt screen hand-off and process exit
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package halt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/msto63/guru/internal/severity"
)

// Fixed texts of the halt sequence
const (
	Banner         = "Software Failure, Halting Execution"
	TraceHeader    = "Stack trace follows:"
	ReentryMessage = "Detected cleanup in process, attempting to die peacefully."
)

// ExitFailure is the only exit status used by the controller
const ExitFailure = 1

// DefaultDisplayWidth is the number of columns of the message shown on the
// halt screen. The log always gets the full text.
const DefaultDisplayWidth = 39

// State of the controller
type State int

const (
	Idle State = iota
	Halting
	Terminated
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Halting:
		return "halting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Kind classifies what triggered a halt
type Kind string

const (
	KindHalt    Kind = "halt"
	KindAssert  Kind = "assert"
	KindCascade Kind = "cascade"
	KindSignal  Kind = "signal"
	KindPanic   Kind = "panic"
	KindError   Kind = "error"
)

// Event describes a halt, handed to the Recorder before presentation
type Event struct {
	Time    time.Time
	Kind    Kind
	Message string
	Frames  []string
}

// Sink receives the crash log lines
type Sink interface {
	Write(sev severity.Severity, text string)
	Close() error
}

// Stack provides the frame labels for the trace, innermost first
type Stack interface {
	Snapshot() []string
}

// Presenter renders the halt screen. Present blocks until the user dismisses
// the screen or the process is forced to exit.
type Presenter interface {
	Present(ctx context.Context, banner, message string) error
	Teardown() error
}

// Recorder persists halt events. Errors are ignored by the controller.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Option configures a Controller
type Option func(*Controller)

// WithPresenter sets the halt screen
func WithPresenter(p Presenter) Option {
	return func(c *Controller) { c.presenter = p }
}

// WithRecorder sets the halt journal
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithExit replaces os.Exit. Tests use it to observe termination.
func WithExit(exit func(code int)) Option {
	return func(c *Controller) { c.exit = exit }
}

// WithClock replaces the clock used for recorded events
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDisplayWidth sets the halt screen message width
func WithDisplayWidth(width int) Option {
	return func(c *Controller) {
		if width > 0 {
			c.width = width
		}
	}
}

// Controller runs the halt sequence at most once per process
type Controller struct {
	mu        sync.Mutex
	state     State
	ready     bool
	message   string
	sink      Sink
	stack     Stack
	presenter Presenter
	recorder  Recorder
	exit      func(code int)
	now       func() time.Time
	width     int
	done      chan struct{}
	doneOnce  sync.Once
}

// New creates an idle controller
func New(sink Sink, stack Stack, opts ...Option) *Controller {
	c := &Controller{
		sink:  sink,
		stack: stack,
		exit:  os.Exit,
		now:   time.Now,
		width: DefaultDisplayWidth,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConsoleReady tells the controller whether the presenter can render.
// Until then a halt exits without presentation.
func (c *Controller) ConsoleReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// SetPresenter replaces the presenter
func (c *Controller) SetPresenter(p Presenter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presenter = p
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns the message of the halt in progress
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Done is closed once the exit function has returned. With os.Exit it is
// never closed, so waiting on it parks the caller until the process ends.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Halt runs the halt sequence. It does not return unless the exit function
// was replaced.
func (c *Controller) Halt(message string) {
	c.HaltWith(KindHalt, message)
}

// HaltError halts with the text of err
func (c *Controller) HaltError(err error) {
	if err == nil {
		c.HaltWith(KindError, "unknown error")
		return
	}
	c.HaltWith(KindError, err.Error())
}

// HaltWith runs the halt sequence for a classified trigger
func (c *Controller) HaltWith(kind Kind, message string) {
	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		c.sink.Write(severity.Critical, message)
		c.sink.Write(severity.Warn, ReentryMessage)
		c.terminate()
		return
	}
	c.state = Halting
	c.message = message
	ready := c.ready
	presenter := c.presenter
	c.mu.Unlock()

	frames := c.stack.Snapshot()
	c.sink.Write(severity.Critical, Banner)
	c.sink.Write(severity.Critical, message)
	if len(frames) > 0 {
		c.sink.Write(severity.StackFrame, TraceHeader)
		for i, f := range frames {
			c.sink.Write(severity.StackFrame, fmt.Sprintf("%d: %s", len(frames)-1-i, f))
		}
	}

	if c.recorder != nil {
		_ = c.recorder.Record(context.Background(), Event{
			Time:    c.now(),
			Kind:    kind,
			Message: message,
			Frames:  frames,
		})
	}

	if !ready || presenter == nil {
		c.terminate()
		return
	}

	c.present(presenter, Truncate(message, c.width))
	_ = c.sink.Close()
	c.terminate()
}

// present shows the halt screen. A panic inside the presenter is routed
// back into HaltWith, which takes the reentry exit.
func (c *Controller) present(p Presenter, message string) {
	defer func() {
		if r := recover(); r != nil {
			c.HaltWith(KindPanic, fmt.Sprintf("Runtime panic: %v", r))
		}
	}()

	_ = p.Present(context.Background(), Banner, message)
	_ = p.Teardown()
}

func (c *Controller) terminate() {
	c.mu.Lock()
	c.state = Terminated
	c.mu.Unlock()
	c.exit(ExitFailure)
	c.doneOnce.Do(func() { close(c.done) })
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Truncate cuts message to width display columns. Line breaks and tabs become
// spaces so the halt screen stays on one line; other whitespace is kept.
func Truncate(message string, width int) string {
	message = lineBreaks.Replace(message)
	if width <= 0 {
		return message
	}
	return runewidth.Truncate(message, width, "")
}
