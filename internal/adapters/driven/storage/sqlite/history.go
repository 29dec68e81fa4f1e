// Package sqlite provides a SQLite-backed run history store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.RunHistoryStore = (*HistoryStore)(nil)

// schema holds the single history table. The store keeps run
// summaries only; no extracted text is ever written to disk.
const schema = `
	CREATE TABLE IF NOT EXISTS search_runs (
		id            TEXT PRIMARY KEY,
		query         TEXT NOT NULL,
		root          TEXT NOT NULL,
		scanned       INTEGER NOT NULL,
		extracted_ok  INTEGER NOT NULL,
		skipped       INTEGER NOT NULL,
		matched       INTEGER NOT NULL,
		matched_paths TEXT NOT NULL,
		report_path   TEXT NOT NULL,
		started_at    DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_search_runs_started_at
		ON search_runs(started_at DESC);
`

// HistoryStore is a SQLite-backed implementation of
// driven.RunHistoryStore.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a run history store at the specified data
// directory. If dataDir is empty, defaults to ~/.docscout/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docscout", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &HistoryStore{
		db:   db,
		path: dbPath,
	}, nil
}

// Save records a completed run.
func (s *HistoryStore) Save(ctx context.Context, rec driven.RunRecord) error {
	paths, err := json.Marshal(rec.MatchedPaths)
	if err != nil {
		return fmt.Errorf("marshal matched paths: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_runs
			(id, query, root, scanned, extracted_ok, skipped, matched, matched_paths, report_path, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Query, rec.Root,
		rec.Scanned, rec.ExtractedOK, rec.Skipped, rec.Matched,
		string(paths), rec.ReportPath, rec.StartedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]driven.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, root, scanned, extracted_ok, skipped, matched, matched_paths, report_path, started_at
		FROM search_runs
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []driven.RunRecord
	for rows.Next() {
		var rec driven.RunRecord
		var paths, startedAt string
		if err := rows.Scan(
			&rec.ID, &rec.Query, &rec.Root,
			&rec.Scanned, &rec.ExtractedOK, &rec.Skipped, &rec.Matched,
			&paths, &rec.ReportPath, &startedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(paths), &rec.MatchedPaths); err != nil {
			return nil, fmt.Errorf("unmarshal matched paths: %w", err)
		}
		rec.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}
