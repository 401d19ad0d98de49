// Package storage persists named datasets in a local SQLite database so
// they can be reloaded and re-sorted without keeping the source files
// around.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"sortkit/internal/logging"
)

// Store is a dataset store backed by a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	path   string
}

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	digest       TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dataset_records (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	body       TEXT NOT NULL,
	PRIMARY KEY (dataset_id, position)
);

CREATE INDEX IF NOT EXISTS idx_datasets_digest ON datasets(digest);
`

// Open opens or creates the store database at path, creating parent
// directories and the schema as needed.
func Open(path string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	logger.Debug("store opened", logging.Fields{"path": path})

	return &Store{conn: conn, logger: logger.With(logging.Fields{"component": "store"}), path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// withTx executes fn inside a transaction, rolling back on error or
// panic.
func (s *Store) withTx(fn func(*sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
