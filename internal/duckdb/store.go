// Package duckdb persists classification runs and their results in DuckDB
// so they can be queried by variant or by inheritance mode.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for classification results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id VARCHAR PRIMARY KEY,
			run_no INTEGER,
			started_at TIMESTAMP,
			input_path VARCHAR,
			input_size BIGINT,
			input_mtime TIMESTAMP,
			records INTEGER,
			failed INTEGER,
			status VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS variant_results (
			run_id VARCHAR,
			seq INTEGER,
			variant_id VARCHAR,
			chrom VARCHAR,
			pos BIGINT,
			ref VARCHAR,
			alt VARCHAR,
			novo_pp DOUBLE,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS genotype_labels (
			run_id VARCHAR,
			seq INTEGER,
			role VARCHAR,
			genotype VARCHAR,
			label VARCHAR,
			PRIMARY KEY (run_id, seq, role)
		)`,
		`CREATE TABLE IF NOT EXISTS inheritance_modes (
			run_id VARCHAR,
			seq INTEGER,
			rank INTEGER,
			mode VARCHAR,
			PRIMARY KEY (run_id, seq, rank)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
