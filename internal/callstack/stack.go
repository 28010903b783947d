// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     callstack
// Description: Manually maintained stack of frame labels for crash reports.
//              Frames survive stripped binaries and show up in the log of
//              regular users, not only in debug builds.
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package callstack

import (
	"sync"
)

// Stack is an ordered sequence of active frame labels
type Stack struct {
	mu     sync.Mutex
	frames []string
}

// New creates an empty stack
func New() *Stack {
	return &Stack{}
}

// Enter pushes a frame label and returns the function that pops it again.
// Typical use:
//
//	defer stack.Enter("world.Load")()
//
// The release function pops exactly one entry, however often it is called.
func (s *Stack) Enter(label string) func() {
	s.mu.Lock()
	s.frames = append(s.frames, label)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(s.pop)
	}
}

// pop removes the innermost frame; a no-op on an empty stack
func (s *Stack) pop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return
	}
	s.frames[len(s.frames)-1] = ""
	s.frames = s.frames[:len(s.frames)-1]
}

// Snapshot returns the frame labels innermost first. The stack is not modified.
func (s *Stack) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		out[len(s.frames)-1-i] = f
	}
	return out
}

// Depth returns the number of active frames
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}
