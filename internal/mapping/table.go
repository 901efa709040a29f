// Package mapping loads tab-delimited mapping tables keyed by a column and
// compares two versions of a table.
package mapping

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadOptions configures how a mapping table is read.
type LoadOptions struct {
	// SkipLines is the number of non-blank preamble lines before the header.
	SkipLines int
	// KeyColumn names the column whose values identify rows.
	KeyColumn string
	// Drop lists columns to ignore.
	Drop []string
}

// DefaultLoadOptions matches the layout of the VCF mapping table exports:
// five preamble lines, rows keyed by field_name, and a row-number column.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SkipLines: 5, KeyColumn: "field_name", Drop: []string{"no"}}
}

// Table is a loaded mapping table. Values are stored per key in Columns order.
type Table struct {
	Columns []string
	Keys    []string
	rows    map[string][]string
}

// Row returns the values for key in Columns order.
func (t *Table) Row(key string) ([]string, bool) {
	r, ok := t.rows[key]
	return r, ok
}

// Value returns one cell.
func (t *Table) Value(key, column string) (string, bool) {
	r, ok := t.rows[key]
	if !ok {
		return "", false
	}
	for i, c := range t.Columns {
		if c == column {
			return r[i], true
		}
	}
	return "", false
}

// Load reads a mapping table from a file.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping table: %w", err)
	}
	defer f.Close()

	t, err := LoadReader(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadReader reads a mapping table. Short rows are padded with empty values.
func LoadReader(r io.Reader, opts LoadOptions) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNum := 0
	skipped := 0
	var header []string
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if skipped < opts.SkipLines {
			skipped++
			continue
		}
		header = strings.Split(line, "\t")
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mapping table: %w", err)
	}
	if header == nil {
		return nil, &ParseError{Line: lineNum, Message: "missing header line"}
	}
	keyIdx := -1
	drop := make(map[string]bool, len(opts.Drop))
	for _, d := range opts.Drop {
		drop[d] = true
	}

	var keep []int
	t := &Table{rows: make(map[string][]string)}
	for i, col := range header {
		if col == opts.KeyColumn {
			keyIdx = i
			continue
		}
		if drop[col] {
			continue
		}
		keep = append(keep, i)
		t.Columns = append(t.Columns, col)
	}
	if keyIdx < 0 {
		return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("key column %q not found", opts.KeyColumn)}
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) > len(header) {
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("expected at most %d fields, got %d", len(header), len(fields))}
		}
		for len(fields) < len(header) {
			fields = append(fields, "")
		}

		key := fields[keyIdx]
		if _, dup := t.rows[key]; dup {
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("duplicate key %q", key)}
		}
		values := make([]string, len(keep))
		for j, i := range keep {
			values[j] = fields[i]
		}
		t.rows[key] = values
		t.Keys = append(t.Keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mapping table: %w", err)
	}

	return t, nil
}

// ParseError represents an error in a mapping table with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mapping table parse error at line %d: %s", e.Line, e.Message)
}
