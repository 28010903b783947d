//go:build unix

package signals

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestCauseStrings(t *testing.T) {
	tests := []struct {
		sig  unix.Signal
		want string
	}{
		{unix.SIGABRT, "Software requested abort."},
		{unix.SIGSEGV, "Segmentation fault."},
		{unix.SIGILL, "Illegal instruction."},
		{unix.SIGFPE, "Floating-point exception."},
		{unix.SIGUSR1, UnknownCause},
	}

	for _, tt := range tests {
		t.Run(tt.sig.String(), func(t *testing.T) {
			if got := Cause(tt.sig); got != tt.want {
				t.Errorf("Cause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRealSignalIsIntercepted(t *testing.T) {
	h := newRecordingHalter()
	b := New(h)
	if err := b.Install(); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	defer b.Stop()

	// Sent with kill, SIGFPE is asynchronous and goes to the channel.
	if err := unix.Kill(unix.Getpid(), unix.SIGFPE); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case <-h.got:
	case <-time.After(5 * time.Second):
		t.Fatal("SIGFPE not intercepted")
	}
	if got := h.snapshot()[0].message; got != "Floating-point exception." {
		t.Errorf("cause = %q", got)
	}
}
