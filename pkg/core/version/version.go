// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and its tools
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package version

// Version constants
const (
	// Guru is the library version
	Guru = "1.0.0"

	// Component versions
	HaltScreen = "1.0.0"
	LogViewer  = "1.0.0"
	Journal    = "1.0.0"

	// JournalSchema is bumped whenever the halts table changes
	JournalSchema = 1
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "haltscreen":
		return HaltScreen
	case "logviewer":
		return LogViewer
	case "journal":
		return Journal
	default:
		return Guru
	}
}
