package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

var storedRoles = []inheritance.Role{inheritance.RoleSelf, inheritance.RoleMother, inheritance.RoleFather}

// Entry is one classified record to be written to a run.
type Entry struct {
	Seq    int
	Record *record.Record
	Result *inheritance.Result
}

// StoredResult is a classification read back from the store.
type StoredResult struct {
	RunID     string
	Seq       int
	VariantID string
	Chrom     string
	Pos       int64
	Ref       string
	Alt       string
	NovoPP    *float64
	Genotypes map[inheritance.Role]string
	Labels    map[inheritance.Role]genotype.Label
	Modes     []inheritance.Mode
}

// WriteResults batch-inserts classified records for a run using the Appender API.
func (s *Store) WriteResults(run *Run, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	tables := []string{"variant_results", "genotype_labels", "inheritance_modes"}
	appenders := make([]*goduckdb.Appender, len(tables))
	if err := conn.Raw(func(driverConn any) error {
		for i, table := range tables {
			a, err := goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
			if err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
			appenders[i] = a
		}
		return nil
	}); err != nil {
		closeAppenders(appenders)
		return fmt.Errorf("create appender: %w", err)
	}
	defer closeAppenders(appenders)
	variants, labels, modes := appenders[0], appenders[1], appenders[2]

	for _, e := range entries {
		seq := int32(e.Seq)
		v := e.Record.Variant

		var novoPP any
		if e.Record.NovoPP != nil {
			novoPP = *e.Record.NovoPP
		}
		if err := variants.AppendRow(run.ID, seq, e.Record.Title(), string(v.Chrom), v.Pos, v.Ref, v.Alt, novoPP); err != nil {
			return fmt.Errorf("append variant result: %w", err)
		}

		for _, role := range storedRoles {
			sg, ok := e.Record.Sample(string(role))
			if !ok {
				continue
			}
			if err := labels.AppendRow(run.ID, seq, string(role), sg.NumGT, e.Result.Label(role).String()); err != nil {
				return fmt.Errorf("append genotype label: %w", err)
			}
		}

		for rank, m := range e.Result.InheritanceModes {
			if err := modes.AppendRow(run.ID, seq, int32(rank), string(m)); err != nil {
				return fmt.Errorf("append inheritance mode: %w", err)
			}
		}
	}

	for i, a := range appenders {
		if err := a.Flush(); err != nil {
			return fmt.Errorf("flush %s: %w", tables[i], err)
		}
	}
	return nil
}

func closeAppenders(appenders []*goduckdb.Appender) {
	for _, a := range appenders {
		if a != nil {
			a.Close()
		}
	}
}

// ClearResults removes all runs and their results.
func (s *Store) ClearResults() error {
	for _, table := range []string{"inheritance_modes", "genotype_labels", "variant_results", "runs"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// LookupVariant returns the results for a variant ID from the most recent
// run that classified it.
func (s *Store) LookupVariant(variantID string) ([]StoredResult, error) {
	rows, err := s.db.Query(`SELECT
		v.run_id, v.seq, v.variant_id, v.chrom, v.pos, v.ref, v.alt, v.novo_pp
		FROM variant_results v JOIN runs r ON r.run_id = v.run_id
		WHERE v.variant_id = ? AND r.run_no = (
			SELECT MAX(r2.run_no) FROM runs r2
			JOIN variant_results v2 ON v2.run_id = r2.run_id
			WHERE v2.variant_id = ?)
		ORDER BY v.seq`, variantID, variantID)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	results, err := scanStoredResults(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	return results, s.loadDetails(results)
}

// SearchByMode returns the results of a run that include the given mode.
// An empty runID selects the most recent run.
func (s *Store) SearchByMode(runID string, mode inheritance.Mode) ([]StoredResult, error) {
	if runID == "" {
		latest, err := s.LatestRun()
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, nil
		}
		runID = latest.ID
	}

	rows, err := s.db.Query(`SELECT
		v.run_id, v.seq, v.variant_id, v.chrom, v.pos, v.ref, v.alt, v.novo_pp
		FROM variant_results v JOIN inheritance_modes m
			ON m.run_id = v.run_id AND m.seq = v.seq
		WHERE v.run_id = ? AND m.mode = ?
		ORDER BY v.seq`, runID, string(mode))
	if err != nil {
		return nil, fmt.Errorf("query by mode: %w", err)
	}
	results, err := scanStoredResults(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	return results, s.loadDetails(results)
}

// loadDetails fills genotypes, labels and modes.
func (s *Store) loadDetails(results []StoredResult) error {
	for i := range results {
		r := &results[i]
		r.Genotypes = make(map[inheritance.Role]string)
		r.Labels = make(map[inheritance.Role]genotype.Label)
		r.Modes = []inheritance.Mode{}

		rows, err := s.db.Query(`SELECT role, genotype, label FROM genotype_labels
			WHERE run_id = ? AND seq = ?`, r.RunID, r.Seq)
		if err != nil {
			return fmt.Errorf("query labels: %w", err)
		}
		for rows.Next() {
			var role, gt, label string
			if err := rows.Scan(&role, &gt, &label); err != nil {
				rows.Close()
				return fmt.Errorf("scan label: %w", err)
			}
			l, err := genotype.ParseLabel(label)
			if err != nil {
				rows.Close()
				return fmt.Errorf("stored label of %s: %w", role, err)
			}
			r.Genotypes[inheritance.Role(role)] = gt
			r.Labels[inheritance.Role(role)] = l
		}
		rows.Close()

		rows, err = s.db.Query(`SELECT mode FROM inheritance_modes
			WHERE run_id = ? AND seq = ? ORDER BY rank`, r.RunID, r.Seq)
		if err != nil {
			return fmt.Errorf("query modes: %w", err)
		}
		for rows.Next() {
			var m string
			if err := rows.Scan(&m); err != nil {
				rows.Close()
				return fmt.Errorf("scan mode: %w", err)
			}
			r.Modes = append(r.Modes, inheritance.Mode(m))
		}
		rows.Close()
	}
	return nil
}

// scanStoredResults scans variant_results rows.
func scanStoredResults(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]StoredResult, error) {
	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		var novoPP sql.NullFloat64
		if err := rows.Scan(&r.RunID, &r.Seq, &r.VariantID, &r.Chrom, &r.Pos, &r.Ref, &r.Alt, &novoPP); err != nil {
			return nil, fmt.Errorf("scan variant result: %w", err)
		}
		if novoPP.Valid {
			v := novoPP.Float64
			r.NovoPP = &v
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant results: %w", err)
	}
	return results, nil
}
