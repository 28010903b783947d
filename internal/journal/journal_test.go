package journal

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/pkg/core/version"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "guru.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndQuery(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	err := j.Record(ctx, halt.Event{
		Time:    now,
		Kind:    halt.KindCascade,
		Message: "Cascade failure detected!",
		Frames:  []string{"world.tick", "main"},
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := j.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ID == "" {
		t.Error("ID not generated")
	}
	if e.Kind != halt.KindCascade || e.Message != "Cascade failure detected!" {
		t.Errorf("entry = %+v", e)
	}
	if !reflect.DeepEqual(e.Frames, []string{"world.tick", "main"}) {
		t.Errorf("frames = %v", e.Frames)
	}
	if !e.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, now)
	}
	if e.PID == 0 || e.Program == "" {
		t.Errorf("process info missing: %+v", e)
	}
}

func TestQueryFilterAndOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	kinds := []halt.Kind{halt.KindSignal, halt.KindAssert, halt.KindSignal}
	for i, k := range kinds {
		if err := j.Insert(ctx, &Entry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Kind:      k,
			Message:   string(k),
			Program:   "test",
		}); err != nil {
			t.Fatal(err)
		}
	}

	signals, err := j.Query(ctx, Filter{Kind: halt.KindSignal})
	if err != nil {
		t.Fatal(err)
	}
	if len(signals) != 2 {
		t.Fatalf("signal entries = %d, want 2", len(signals))
	}
	if !signals[0].Timestamp.After(signals[1].Timestamp) {
		t.Error("entries not ordered newest first")
	}

	limited, err := j.Query(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Kind != halt.KindSignal {
		t.Errorf("limited = %+v", limited)
	}

	stats, err := j.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats[halt.KindSignal] != 2 || stats[halt.KindAssert] != 1 {
		t.Errorf("stats = %v", stats)
	}
}

func TestPrune(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	j.Insert(ctx, &Entry{Timestamp: time.Now().Add(-48 * time.Hour), Kind: halt.KindHalt, Message: "old", Program: "test"})
	j.Insert(ctx, &Entry{Timestamp: time.Now(), Kind: halt.KindHalt, Message: "new", Program: "test"})

	n, err := j.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}

	entries, _ := j.Query(ctx, Filter{})
	if len(entries) != 1 || entries[0].Message != "new" {
		t.Errorf("entries after prune = %+v", entries)
	}
}

func TestSchemaVersion(t *testing.T) {
	j := openTestJournal(t)

	v, err := j.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if v != version.JournalSchema {
		t.Errorf("SchemaVersion() = %d, want %d", v, version.JournalSchema)
	}
}
