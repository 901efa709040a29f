// Package output provides classification output formatters.
package output

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

// ModeSeparator joins inheritance modes within a single column.
const ModeSeparator = "; "

var tableRoles = []inheritance.Role{inheritance.RoleMother, inheritance.RoleFather, inheritance.RoleSelf}

// TableOptions configures a TableWriter.
type TableOptions struct {
	// Sorted buffers all rows and writes them ordered by chromosome class,
	// mother, father and self genotype, then novoPP descending.
	Sorted bool
	// Excel prefixes genotype and allele depth columns with "'" so that
	// spreadsheets do not read 1/1 as a date.
	Excel bool
}

// TabWriter writes classification results in tab-delimited format, one row
// per record.
type TabWriter struct {
	w       *bufio.Writer
	opts    TableOptions
	columns []string
	rows    []tableRow
}

type tableRow struct {
	chrom  string
	gts    []string // mother, father, self
	novoPP *float64
	values []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer, opts TableOptions) *TabWriter {
	return &TabWriter{
		w:    bufio.NewWriter(w),
		opts: opts,
		columns: []string{
			"GT_mother",
			"GT_father",
			"GT_self",
			"chrom",
			"novoPP",
			"AD_mother",
			"AD_father",
			"AD_self",
			"title",
			"GT_label_mother",
			"GT_label_father",
			"GT_label_self",
			"inheritance_modes",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single classified record. With Sorted set, the row is
// buffered until Flush.
func (tw *TabWriter) Write(rec *record.Record, res *inheritance.Result) error {
	row := tableRow{
		chrom:  genotype.ClassifyChrom(string(rec.Variant.Chrom)).String(),
		novoPP: rec.NovoPP,
	}

	var ads, labels []string
	for _, role := range tableRoles {
		sg, _ := rec.Sample(string(role))
		row.gts = append(row.gts, sg.NumGT)
		ads = append(ads, sg.AD)
		labels = append(labels, res.Label(role).String())
	}

	quote := func(s string) string {
		if tw.opts.Excel {
			return "'" + s
		}
		return s
	}

	novoPP := ""
	if rec.NovoPP != nil {
		novoPP = strconv.FormatFloat(*rec.NovoPP, 'g', -1, 64)
	}

	row.values = []string{
		quote(row.gts[0]),
		quote(row.gts[1]),
		quote(row.gts[2]),
		row.chrom,
		novoPP,
		quote(ads[0]),
		quote(ads[1]),
		quote(ads[2]),
		rec.Title(),
		labels[0],
		labels[1],
		labels[2],
		inheritance.Join(res.InheritanceModes, ModeSeparator),
	}

	if tw.opts.Sorted {
		tw.rows = append(tw.rows, row)
		return nil
	}
	return tw.writeRow(row)
}

func (tw *TabWriter) writeRow(row tableRow) error {
	_, err := tw.w.WriteString(strings.Join(row.values, "\t") + "\n")
	return err
}

// Flush writes any buffered rows and flushes the underlying writer.
func (tw *TabWriter) Flush() error {
	if len(tw.rows) > 0 {
		sort.SliceStable(tw.rows, func(i, j int) bool {
			return rowLess(tw.rows[i], tw.rows[j])
		})
		for _, row := range tw.rows {
			if err := tw.writeRow(row); err != nil {
				return err
			}
		}
		tw.rows = nil
	}
	return tw.w.Flush()
}

// rowLess orders by chrom and genotypes ascending, then novoPP descending
// with absent values last.
func rowLess(a, b tableRow) bool {
	if a.chrom != b.chrom {
		return a.chrom < b.chrom
	}
	for k := range a.gts {
		if a.gts[k] != b.gts[k] {
			return a.gts[k] < b.gts[k]
		}
	}
	switch {
	case a.novoPP == nil:
		return false
	case b.novoPP == nil:
		return true
	}
	return *a.novoPP > *b.novoPP
}
