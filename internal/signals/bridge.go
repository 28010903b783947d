// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     signals
// Description: Routes fatal OS signals into the halt sequence
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package signals

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/msto63/guru/internal/halt"
)

// UnknownCause is used for signals outside the hooked set
const UnknownCause = "Intercepted unknown signal."

// Halter is the part of the halt controller the bridge needs
type Halter interface {
	HaltWith(kind halt.Kind, message string)
}

// Hooker registers and removes signal handlers. The default implementation
// wraps os/signal.
type Hooker interface {
	Hook(c chan<- os.Signal, sig os.Signal) error
	Disarm(sigs ...os.Signal)
	Release(c chan<- os.Signal)
}

// hooked describes one intercepted signal
type hooked struct {
	sig   os.Signal
	name  string
	cause string
}

// notifyHooker delivers signals through os/signal. Handlers run on a normal
// goroutine, so the halt sequence never executes inside an OS handler.
type notifyHooker struct{}

func (notifyHooker) Hook(c chan<- os.Signal, sig os.Signal) error {
	signal.Notify(c, sig)
	return nil
}

func (notifyHooker) Disarm(sigs ...os.Signal) {
	signal.Ignore(sigs...)
}

func (notifyHooker) Release(c chan<- os.Signal) {
	signal.Stop(c)
}

// Option configures a Bridge
type Option func(*Bridge)

// WithHooker replaces the os/signal based hooker
func WithHooker(h Hooker) Option {
	return func(b *Bridge) { b.hooker = h }
}

// Bridge intercepts abort, segmentation fault, illegal instruction and
// floating-point exception signals and turns them into halts.
type Bridge struct {
	halter    Halter
	hooker    Hooker
	ch        chan os.Signal
	done      chan struct{}
	installed bool
	mu        sync.Mutex
	stopOnce  sync.Once
}

// New creates a bridge that reports to h
func New(h Halter, opts ...Option) *Bridge {
	b := &Bridge{
		halter: h,
		hooker: notifyHooker{},
		ch:     make(chan os.Signal, len(fatalSignals)),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Install hooks all fatal signals. Failing to hook any of them halts, since
// the reporter does not run without fault coverage.
func (b *Bridge) Install() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.installed {
		return nil
	}
	for _, h := range fatalSignals {
		if err := b.hooker.Hook(b.ch, h.sig); err != nil {
			b.halter.HaltWith(halt.KindSignal, fmt.Sprintf("Failed to hook %s signal.", h.name))
			return fmt.Errorf("signals: hook %s: %w", h.name, err)
		}
	}
	b.installed = true

	go b.loop()
	return nil
}

func (b *Bridge) loop() {
	select {
	case sig := <-b.ch:
		b.Intercept(sig)
	case <-b.done:
	}
}

// Intercept disarms every hooked signal and halts with the cause of sig.
// It does not return unless the halter's exit was replaced.
func (b *Bridge) Intercept(sig os.Signal) {
	b.hooker.Disarm(Signals()...)
	b.halter.HaltWith(halt.KindSignal, Cause(sig))
}

// Stop releases the handlers without halting
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		b.hooker.Release(b.ch)
		close(b.done)
	})
}

// Cause maps a signal to the message shown on the halt screen
func Cause(sig os.Signal) string {
	for _, h := range fatalSignals {
		if h.sig == sig {
			return h.cause
		}
	}
	return UnknownCause
}

// Signals returns the hooked signals
func Signals() []os.Signal {
	out := make([]os.Signal, len(fatalSignals))
	for i, h := range fatalSignals {
		out[i] = h.sig
	}
	return out
}
