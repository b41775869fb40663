// Package store provides the SQLite persistence layer: the analysis cache,
// the append-only cost ledger, and the favorites table.
package store

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a single SQLite database holding all DeepInsight tables.
type Store struct {
	db     *sql.DB
	hits   atomic.Int64
	misses atomic.Int64

	// now is the clock used for freshness checks and sweep cutoffs.
	// Overridable in tests to pin TTL boundaries exactly.
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	fund_code TEXT NOT NULL,
	analysis_kind TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (fund_code, analysis_kind)
);

CREATE TABLE IF NOT EXISTS cost_ledger (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	tokens_used INTEGER NOT NULL DEFAULT 0,
	estimated_cost TEXT NOT NULL DEFAULT '0',
	operation_type TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cost_ledger_date ON cost_ledger(date);

CREATE TABLE IF NOT EXISTS favorites (
	fund_code TEXT PRIMARY KEY,
	fund_name TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

// New opens (or creates) the database at dbPath and runs auto-migration.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
