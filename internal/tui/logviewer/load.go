package logviewer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/msto63/guru/internal/logsink"
)

// Load reads a guru log file and returns at most max parsed lines, the most
// recent ones. Lines that do not parse are counted in skipped.
func Load(path string, max int) (lines []logsink.Line, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("logviewer: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line, err := logsink.ParseLine(scanner.Text())
		if err != nil {
			skipped++
			continue
		}
		lines = append(lines, line)
		if max > 0 && len(lines) > max {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return lines, skipped, fmt.Errorf("logviewer: read %s: %w", path, err)
	}
	return lines, skipped, nil
}
