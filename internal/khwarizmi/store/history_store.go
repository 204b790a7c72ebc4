// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     store
// Description: Persistent history of solved and rejected equations
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// Status of a history entry
type Status string

const (
	StatusSolved Status = "solved"
	StatusFailed Status = "failed"
)

// Entry is one solve attempt
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Input      string    `json:"input"`
	Output     string    `json:"output,omitempty"`
	Status     Status    `json:"status"`
	ErrorCode  string    `json:"error_code,omitempty"`
	Steps      int       `json:"steps"`
	DurationMs float64   `json:"duration_ms"`
	Cached     bool      `json:"cached"`
	Source     string    `json:"source,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

// Filter defines criteria for querying history
type Filter struct {
	Status Status
	Source string
	Since  time.Time
	Limit  int
	Offset int
}

// Stats summarizes the stored history
type Stats struct {
	Total         int64            `json:"total"`
	Solved        int64            `json:"solved"`
	Failed        int64            `json:"failed"`
	ByErrorCode   map[string]int64 `json:"by_error_code"`
	AvgDurationMs float64          `json:"avg_duration_ms"`
}

// HistoryStore defines the interface for history persistence
type HistoryStore interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteHistoryStore opens (and creates if needed) the history database
func NewSQLiteHistoryStore(cfg SQLiteConfig) (*SQLiteHistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}

	store := &SQLiteHistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}

	return store, nil
}

func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		input TEXT NOT NULL,
		output TEXT,
		status TEXT NOT NULL,
		error_code TEXT,
		steps INTEGER NOT NULL DEFAULT 0,
		duration_ms REAL NOT NULL DEFAULT 0,
		cached INTEGER NOT NULL DEFAULT 0,
		source TEXT,
		request_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_history_status ON history(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry, assigning ID and timestamp when missing
func (s *SQLiteHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, input, output, status, error_code, steps, duration_ms, cached, source, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.Input, entry.Output, entry.Status, entry.ErrorCode,
		entry.Steps, entry.DurationMs, entry.Cached, entry.Source, entry.RequestID)
	if err != nil {
		return dbError(err, "failed to insert history entry")
	}

	return nil
}

// Query returns entries newest first
func (s *SQLiteHistoryStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, input, output, status, error_code, steps, duration_ms, cached, source, request_id
		FROM history WHERE 1=1`
	var args []interface{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history")
	}
	return entries, nil
}

// Get returns a single entry
func (s *SQLiteHistoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, timestamp, input, output, status, error_code, steps, duration_ms, cached, source, request_id
		FROM history WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			return nil, err.(*mdwerror.Error).WithDetail("id", id)
		}
		return nil, err
	}
	return entry, nil
}

// Stats returns aggregate counts
func (s *SQLiteHistoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByErrorCode: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'solved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM history`).Scan(&stats.Total, &stats.Solved, &stats.Failed, &stats.AvgDurationMs)
	if err != nil {
		return nil, dbError(err, "failed to read statistics")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT error_code, COUNT(*) FROM history
		WHERE status = 'failed' AND error_code <> '' GROUP BY error_code`)
	if err != nil {
		return nil, dbError(err, "failed to read statistics")
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, dbError(err, "failed to scan statistics")
		}
		stats.ByErrorCode[code] = count
	}

	return stats, rows.Err()
}

// Prune removes entries older than the specified duration
func (s *SQLiteHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history")
	}
	return result.RowsAffected()
}

// Ping verifies the database connection
func (s *SQLiteHistoryStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return dbError(err, "history database unreachable")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var output, errorCode, source, requestID sql.NullString

	err := row.Scan(&entry.ID, &entry.Timestamp, &entry.Input, &output, &entry.Status, &errorCode,
		&entry.Steps, &entry.DurationMs, &entry.Cached, &source, &requestID)
	if err == sql.ErrNoRows {
		return nil, mdwerror.New("history entry not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("store.Get")
	}
	if err != nil {
		return nil, dbError(err, "failed to scan history entry")
	}

	entry.Output = output.String
	entry.ErrorCode = errorCode.String
	entry.Source = source.String
	entry.RequestID = requestID.String
	return &entry, nil
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
	if entry.Status == "" {
		entry.Status = StatusSolved
	}
}

func dbError(err error, message string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("store")
}
