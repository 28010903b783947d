package guru

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/msto63/guru/internal/cascade"
	"github.com/msto63/guru/internal/console"
	"github.com/msto63/guru/internal/journal"
	"github.com/msto63/guru/internal/tui/haltscreen"
	"github.com/msto63/guru/pkg/core/config"
	"github.com/msto63/guru/pkg/core/logging"
)

// NewFromConfig creates a reporter from a loaded configuration. Options
// passed in opts override the configured values. A journal enabled in cfg
// is opened here and closed by Close.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Reporter, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		Name:   "guru",
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	base := []Option{
		WithPath(cfg.Log.Path),
		WithLogger(logger),
		WithDisplayWidth(cfg.Halt.DisplayWidth),
		WithCascade(cascade.Config{
			Threshold:      cfg.Cascade.Threshold,
			Window:         cfg.Cascade.Window.Duration,
			WeightWarn:     cfg.Cascade.Weights.Warn,
			WeightError:    cfg.Cascade.Weights.Error,
			WeightCritical: cfg.Cascade.Weights.Critical,
		}),
	}
	if p := PresenterFor(cfg.Halt.Presenter, os.Stdout); p != nil {
		base = append(base, WithPresenter(p))
	}
	if cfg.Signals.Disabled {
		base = append(base, WithoutSignals())
	}

	var j *journal.Journal
	if cfg.Journal.Enabled {
		var err error
		j, err = journal.Open(journal.Config{Path: cfg.Journal.Path})
		if err != nil {
			return nil, fmt.Errorf("guru: %w", err)
		}
		base = append(base, WithRecorder(j))

		if cfg.Journal.RetentionDays > 0 {
			age := time.Duration(cfg.Journal.RetentionDays) * 24 * time.Hour
			n, err := j.Prune(context.Background(), age)
			if err != nil {
				logger.Warn("journal prune failed", "error", err)
			} else if n > 0 {
				logger.Debug("journal pruned", "removed", n)
			}
		}
	}

	r := New(append(base, opts...)...)
	if j != nil {
		r.own(j)
	}
	return r, nil
}

// PresenterFor returns the halt screen for a configured mode. Auto picks the
// full-screen halt screen when out is a terminal and plain console output
// otherwise. None, and unknown modes, return nil.
func PresenterFor(mode string, out *os.File) Presenter {
	switch mode {
	case config.PresenterTUI:
		return haltscreen.New()
	case config.PresenterConsole:
		return console.New(out)
	case config.PresenterAuto, "":
		if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
			return haltscreen.New()
		}
		return console.New(out)
	default:
		return nil
	}
}
