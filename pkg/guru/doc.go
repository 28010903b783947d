// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     guru
// Description: Public error-reporting API
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package guru reports fatal and non-fatal errors.
//
// Non-fatal reports are written to a timestamped log and weighted by
// severity. A burst of them within a short window is treated as a cascade
// failure and halts the program. Halts log the message and a trace of the
// frames entered with Enter, show a halt screen when the console is ready,
// and exit with status 1.
//
// Basic usage:
//
//	r := guru.New(guru.WithPresenter(haltscreen))
//	if err := r.Open("log.txt"); err != nil {
//	    return err
//	}
//	defer r.Close()
//	defer r.Recover()
//
//	r.ReportNonFatalf("chunk %d slow to load", guru.Warn, id)
//	r.AssertOrHalt(player != nil, "No player entity.")
//
// The package-level functions operate on a default Reporter.
package guru
