// ============================================================================
// guru - Error reporting and halt screen
// ============================================================================
//
// Package:     journal
// Description: SQLite history of halts, kept across runs so repeated crashes
//              can be compared after the log file has been overwritten
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/pkg/core/version"
)

// Entry is one recorded halt
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      halt.Kind `json:"kind"`
	Message   string    `json:"message"`
	Frames    []string  `json:"frames,omitempty"`
	Program   string    `json:"program"`
	PID       int       `json:"pid"`
}

// Filter defines criteria for listing halts
type Filter struct {
	Kind      halt.Kind
	StartTime time.Time
	Limit     int
}

// Config holds configuration for the SQLite journal
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/guru.db",
	}
}

var _ halt.Recorder = (*Journal)(nil)

// Journal stores halts in SQLite. It implements halt.Recorder.
type Journal struct {
	db      *sql.DB
	mu      sync.RWMutex
	program string
}

// Open opens or creates the journal database
func Open(cfg Config) (*Journal, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	j := &Journal{db: db, program: filepath.Base(os.Args[0])}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: initialize schema: %w", err)
	}

	return j, nil
}

// initSchema creates the necessary tables
func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS halts (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		frames TEXT,
		program TEXT NOT NULL,
		pid INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_halts_timestamp ON halts(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_halts_kind ON halts(kind);
	`

	if _, err := j.db.Exec(schema); err != nil {
		return err
	}
	_, err := j.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version.JournalSchema))
	return err
}

// SchemaVersion returns the schema version stored in the database
func (j *Journal) SchemaVersion() (int, error) {
	var v int
	if err := j.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("journal: schema version: %w", err)
	}
	return v, nil
}

// Record stores a halt event
func (j *Journal) Record(ctx context.Context, ev halt.Event) error {
	entry := &Entry{
		ID:        uuid.NewString(),
		Timestamp: ev.Time,
		Kind:      ev.Kind,
		Message:   ev.Message,
		Frames:    ev.Frames,
		Program:   j.program,
		PID:       os.Getpid(),
	}
	return j.Insert(ctx, entry)
}

// Insert stores an entry, filling in ID and timestamp when missing
func (j *Journal) Insert(ctx context.Context, entry *Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var framesJSON []byte
	if len(entry.Frames) > 0 {
		framesJSON, _ = json.Marshal(entry.Frames)
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO halts (id, timestamp, kind, message, frames, program, pid)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UTC(), string(entry.Kind), entry.Message, framesJSON, entry.Program, entry.PID)
	if err != nil {
		return fmt.Errorf("journal: insert halt: %w", err)
	}

	return nil
}

// Query lists halts, newest first
func (j *Journal) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	query := `SELECT id, timestamp, kind, message, frames, program, pid FROM halts WHERE 1=1`
	var args []interface{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, string(filter.Kind))
	}
	if !filter.StartTime.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartTime.UTC())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query halts: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var kind string
		var framesJSON sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &kind, &entry.Message,
			&framesJSON, &entry.Program, &entry.PID); err != nil {
			return nil, fmt.Errorf("journal: scan halt: %w", err)
		}

		entry.Kind = halt.Kind(kind)
		if framesJSON.Valid && framesJSON.String != "" {
			_ = json.Unmarshal([]byte(framesJSON.String), &entry.Frames)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Stats returns the number of halts per kind
func (j *Journal) Stats(ctx context.Context) (map[halt.Kind]int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM halts GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("journal: stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[halt.Kind]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("journal: scan stats: %w", err)
		}
		stats[halt.Kind(kind)] = count
	}

	return stats, rows.Err()
}

// Prune deletes halts older than the given age
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := j.db.ExecContext(ctx, `DELETE FROM halts WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}
