// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     logviewer
// Description: Message types for async operations in LogViewer
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logviewer

import (
	"github.com/msto63/guru/internal/logsink"
)

// Message types for tea.Cmd async operations

// logsLoadedMsg is sent when the log file has been read
type logsLoadedMsg struct {
	lines   []logsink.Line
	skipped int
	err     error
}

// fileChangedMsg is sent when the watched log file changes
type fileChangedMsg struct{}

// watchErrMsg is sent when the file watcher reports an error
type watchErrMsg struct {
	err error
}
