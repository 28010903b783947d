package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPresent(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	if err := p.Present(context.Background(), "Software Failure, Halting Execution", "disk on fire"); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if err := p.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Software Failure, Halting Execution") {
		t.Errorf("banner missing in %q", out)
	}
	if !strings.Contains(out, "disk on fire") {
		t.Errorf("message missing in %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected two lines, got %q", out)
	}
}
