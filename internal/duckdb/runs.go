package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Run states.
const (
	RunRunning  = "running"
	RunComplete = "complete"
	RunAborted  = "aborted"
)

// Run is one batch classification written to the store.
type Run struct {
	ID        string
	No        int
	StartedAt time.Time
	Input     FileFingerprint
	Records   int
	Failed    int
	// Status is RunRunning until FinishRun, then RunComplete or RunAborted.
	Status string
}

// BeginRun registers a new run for the given input. Stdin ("-") and
// unreadable paths are recorded by path only.
func (s *Store) BeginRun(input string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Input:     FileFingerprint{Path: input},
		Status:    RunRunning,
	}
	if input != "-" && input != "" {
		if fp, err := StatFile(input); err == nil {
			run.Input = fp
		}
	}

	if err := s.db.QueryRow("SELECT COALESCE(MAX(run_no), 0) + 1 FROM runs").Scan(&run.No); err != nil {
		return nil, fmt.Errorf("next run number: %w", err)
	}

	var mtime any
	if !run.Input.ModTime.IsZero() {
		mtime = run.Input.ModTime.UTC()
	}
	if _, err := s.db.Exec(`INSERT INTO runs
		(run_id, run_no, started_at, input_path, input_size, input_mtime, records, failed, status)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?)`,
		run.ID, run.No, run.StartedAt, run.Input.Path, run.Input.Size, mtime, run.Status); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun records the final counts of a run. A run still marked running
// is marked complete; set Status to RunAborted first for a run that stopped
// on an error.
func (s *Store) FinishRun(run *Run) error {
	if run.Status == "" || run.Status == RunRunning {
		run.Status = RunComplete
	}
	_, err := s.db.Exec(`UPDATE runs SET records = ?, failed = ?, status = ? WHERE run_id = ?`,
		run.Records, run.Failed, run.Status, run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// Runs lists all runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, run_no, started_at, input_path, input_size, input_mtime, records, failed, status
		FROM runs ORDER BY run_no DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var mtime sql.NullTime
		if err := rows.Scan(&r.ID, &r.No, &r.StartedAt, &r.Input.Path, &r.Input.Size, &mtime, &r.Records, &r.Failed, &r.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if mtime.Valid {
			r.Input.ModTime = mtime.Time
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the most recent run, or nil if there is none.
func (s *Store) LatestRun() (*Run, error) {
	runs, err := s.Runs()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
