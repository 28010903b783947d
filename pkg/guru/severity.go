package guru

import "github.com/msto63/guru/internal/severity"

// Severity classifies a logged or reported message
type Severity = severity.Severity

// Severities accepted by Log and ReportNonFatal. Only Warn, Error and
// Critical carry cascade weight.
const (
	Info     = severity.Info
	Warn     = severity.Warn
	Error    = severity.Error
	Critical = severity.Critical
)
