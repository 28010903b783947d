package logsink

import (
	"errors"
	"strings"

	"github.com/msto63/guru/internal/severity"
)

// ErrMalformedLine is returned by ParseLine for text not written by a Sink
var ErrMalformedLine = errors.New("logsink: malformed line")

// Line is a log line read back from a file. Stack trace lines come back as
// untagged Info lines because the file does not distinguish them.
type Line struct {
	Time     string
	Severity severity.Severity
	Text     string
}

// ParseLine splits "[HH:MM:SS] [TAG] text" into its parts
func ParseLine(raw string) (Line, error) {
	raw = strings.TrimRight(raw, "\r\n")
	if len(raw) < len("[00:00:00]") || raw[0] != '[' || raw[9] != ']' {
		return Line{}, ErrMalformedLine
	}

	line := Line{Time: raw[1:9], Severity: severity.Info}
	rest := strings.TrimPrefix(raw[10:], " ")

	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "] "); end > 0 {
			if sev, ok := severity.FromTag(rest[1:end]); ok {
				line.Severity = sev
				rest = rest[end+2:]
			}
		}
	}
	line.Text = rest
	return line, nil
}
