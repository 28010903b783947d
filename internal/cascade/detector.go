// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     cascade
// Description: Weighted, decaying counter that tells an isolated non-fatal
//              error apart from a failure storm
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cascade

import (
	"errors"
	"sync"
	"time"

	"github.com/msto63/guru/internal/severity"
)

// Default tuning
const (
	DefaultThreshold      = 20
	DefaultWindow         = 30 * time.Second
	DefaultWeightWarn     = 1
	DefaultWeightError    = 2
	DefaultWeightCritical = 4
)

// ErrIncorrectSeverity is returned for severities that carry no cascade weight
var ErrIncorrectSeverity = errors.New("cascade: incorrect severity")

// Config holds the detector tuning
type Config struct {
	// Threshold is the weight that must be exceeded within Window
	Threshold uint

	// Window is the time after which an untripped count resets
	Window time.Duration

	WeightWarn     uint
	WeightError    uint
	WeightCritical uint
}

// DefaultConfig returns the default tuning
func DefaultConfig() Config {
	return Config{
		Threshold:      DefaultThreshold,
		Window:         DefaultWindow,
		WeightWarn:     DefaultWeightWarn,
		WeightError:    DefaultWeightError,
		WeightCritical: DefaultWeightCritical,
	}
}

// Detector accumulates non-fatal severities and latches once a cascade is
// detected.
type Detector struct {
	mu          sync.Mutex
	cfg         Config
	weight      uint
	windowStart time.Time
	tripped     bool
}

// New creates a detector. Zero fields in cfg fall back to the defaults.
func New(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.WeightWarn == 0 {
		cfg.WeightWarn = def.WeightWarn
	}
	if cfg.WeightError == 0 {
		cfg.WeightError = def.WeightError
	}
	if cfg.WeightCritical == 0 {
		cfg.WeightCritical = def.WeightCritical
	}
	return &Detector{cfg: cfg}
}

// Start begins the first window at now
func (d *Detector) Start(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windowStart = now
	d.weight = 0
}

// Report feeds one non-fatal severity observed at now. It returns true exactly
// once, on the report that pushes the weight over the threshold.
func (d *Detector) Report(sev severity.Severity, now time.Time) (bool, error) {
	w, err := d.weightOf(sev)
	if err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tripped {
		return false, nil
	}

	if now.Sub(d.windowStart) <= d.cfg.Window {
		d.weight += w
		if d.weight > d.cfg.Threshold {
			d.tripped = true
			return true, nil
		}
		return false, nil
	}

	// Window expired without tripping. The current report opens the next
	// window empty.
	d.windowStart = now
	d.weight = 0
	return false, nil
}

// Tripped reports whether a cascade has been detected
func (d *Detector) Tripped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tripped
}

// Weight returns the weight accumulated in the current window
func (d *Detector) Weight() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.weight
}

// Config returns the effective tuning
func (d *Detector) Config() Config {
	return d.cfg
}

func (d *Detector) weightOf(sev severity.Severity) (uint, error) {
	switch sev {
	case severity.Warn:
		return d.cfg.WeightWarn, nil
	case severity.Error:
		return d.cfg.WeightError, nil
	case severity.Critical:
		return d.cfg.WeightCritical, nil
	default:
		return 0, ErrIncorrectSeverity
	}
}
