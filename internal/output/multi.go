package output

import (
	"errors"

	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

type multiWriter struct {
	writers []inheritance.ResultWriter
}

// MultiWriter duplicates results to every writer, like io.MultiWriter.
func MultiWriter(writers ...inheritance.ResultWriter) inheritance.ResultWriter {
	return &multiWriter{writers: writers}
}

func (m *multiWriter) WriteHeader() error {
	for _, w := range m.writers {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiWriter) Write(rec *record.Record, res *inheritance.Result) error {
	for _, w := range m.writers {
		if err := w.Write(rec, res); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and returns the joined errors.
func (m *multiWriter) Flush() error {
	var errs []error
	for _, w := range m.writers {
		errs = append(errs, w.Flush())
	}
	return errors.Join(errs...)
}
