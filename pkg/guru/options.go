package guru

import (
	"time"

	"github.com/msto63/guru/internal/cascade"
	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/pkg/core/logging"
)

// Presenter renders the halt screen
type Presenter = halt.Presenter

// Recorder persists halts
type Recorder = halt.Recorder

// CascadeConfig tunes cascade detection
type CascadeConfig = cascade.Config

type options struct {
	path      string
	now       func() time.Time
	exit      func(code int)
	presenter Presenter
	recorder  Recorder
	cascade   CascadeConfig
	width     int
	signals   bool
	logger    *logging.Logger
}

func defaultOptions() options {
	return options{
		now:     time.Now,
		cascade: cascade.DefaultConfig(),
		width:   halt.DefaultDisplayWidth,
		signals: true,
		logger:  logging.Discard(),
	}
}

// Option configures a Reporter
type Option func(*options)

// WithPath sets the log file used when Open is called with an empty path
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithClock replaces the wall clock for log timestamps and cascade windows
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithExit replaces os.Exit
func WithExit(exit func(code int)) Option {
	return func(o *options) { o.exit = exit }
}

// WithPresenter sets the halt screen. Without one a halt only logs and exits.
func WithPresenter(p Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// WithRecorder attaches a halt journal
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithCascade replaces the cascade tuning
func WithCascade(cfg CascadeConfig) Option {
	return func(o *options) { o.cascade = cfg }
}

// WithDisplayWidth sets how many columns of the message the halt screen shows
func WithDisplayWidth(width int) Option {
	return func(o *options) { o.width = width }
}

// WithoutSignals skips installing the fatal signal handlers in Open
func WithoutSignals() Option {
	return func(o *options) { o.signals = false }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
