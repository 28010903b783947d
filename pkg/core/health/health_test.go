package health

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("log", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "writable"}
	})

	if checker.Name() != "log" {
		t.Errorf("Name() = %v, want log", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy || result.Message != "writable" {
		t.Errorf("Check() = %+v", result)
	}
}

func TestCheckFunc(t *testing.T) {
	fn := CheckFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	if fn.Name() != "unknown" {
		t.Errorf("Name() = %v, want unknown", fn.Name())
	}
	if fn.Check(context.Background()).Status != StatusHealthy {
		t.Error("Status != healthy")
	}
}

func TestRegistry_RegisterAndCheck(t *testing.T) {
	registry := NewRegistry("guru", "1.0.0")

	registry.RegisterFunc("terminal", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.RegisterFunc("journal", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report := registry.Check(context.Background())

	if report.Program != "guru" || report.Version != "1.0.0" {
		t.Errorf("report = %+v", report)
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("Checks count = %v, want 2", len(report.Checks))
	}
	if report.Checks[0].Name != "journal" || report.Checks[1].Name != "terminal" {
		t.Errorf("checks not sorted by name: %v, %v", report.Checks[0].Name, report.Checks[1].Name)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry("guru", "1.0.0")
	registry.RegisterFunc("temp", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.Unregister("temp")

	if n := len(registry.Check(context.Background()).Checks); n != 0 {
		t.Errorf("After unregister: Checks count = %v, want 0", n)
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("guru", "1.0.0")
			for i, s := range tt.statuses {
				status := s
				registry.RegisterFunc(string(rune('a'+i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: status}
				})
			}
			if got := registry.CheckWithTimeout(time.Second).Status; got != tt.want {
				t.Errorf("Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("guru", "1.0.0")

	var counter int32
	for i := 0; i < 5; i++ {
		registry.RegisterFunc("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			atomic.AddInt32(&counter, 1)
			time.Sleep(10 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	report := registry.Check(context.Background())
	duration := time.Since(start)

	if atomic.LoadInt32(&counter) != 5 {
		t.Errorf("Counter = %v, want 5", counter)
	}
	if duration > 100*time.Millisecond {
		t.Errorf("Duration = %v, expected concurrent execution", duration)
	}
	if len(report.Checks) != 5 {
		t.Errorf("Checks count = %v, want 5", len(report.Checks))
	}
}

func TestWritableCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("keep me\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := WritableCheck("log", path).Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v (%s), want healthy", result.Status, result.Message)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep me\n" {
		t.Errorf("check modified the file: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("check left files behind: %d entries", len(entries))
	}
}

func TestWritableCheck_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "log.txt")

	result := WritableCheck("log", path).Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
}

func TestTerminalCheck(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := TerminalCheck("terminal", f).Check(context.Background()).Status; got != StatusDegraded {
		t.Errorf("regular file Status = %v, want degraded", got)
	}
	if got := TerminalCheck("terminal", nil).Check(context.Background()).Status; got != StatusDegraded {
		t.Errorf("nil file Status = %v, want degraded", got)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{Program: "guru", Status: StatusHealthy, Checks: []CheckResult{{}, {}}}
	if got := report.String(); got != "Program: guru, Status: healthy, Checks: 2" {
		t.Errorf("String() = %q", got)
	}
}
