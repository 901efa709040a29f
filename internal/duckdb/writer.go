package duckdb

import (
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

const defaultBatchSize = 1000

// RunWriter is an inheritance.ResultWriter that stores results under a run.
type RunWriter struct {
	store   *Store
	run     *Run
	seq     int
	pending []Entry
}

// NewRunWriter returns a writer appending to run.
func NewRunWriter(s *Store, run *Run) *RunWriter {
	return &RunWriter{store: s, run: run}
}

// WriteHeader is a no-op.
func (w *RunWriter) WriteHeader() error { return nil }

// Write buffers one result, writing a batch when full.
func (w *RunWriter) Write(rec *record.Record, res *inheritance.Result) error {
	w.pending = append(w.pending, Entry{Seq: w.seq, Record: rec, Result: res})
	w.seq++
	if len(w.pending) >= defaultBatchSize {
		return w.Flush()
	}
	return nil
}

// Flush writes buffered results.
func (w *RunWriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	err := w.store.WriteResults(w.run, w.pending)
	w.pending = w.pending[:0]
	return err
}
