package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/mapping"
)

// WriteDiff writes a mapping table diff: keys only in one table, then one
// line per shared key listing the columns that differ.
func WriteDiff(w io.Writer, d *mapping.Diff) error {
	for _, k := range d.OnlyOld {
		if _, err := fmt.Fprintf(w, "Only in old: %s\n", k); err != nil {
			return err
		}
	}
	for _, k := range d.OnlyNew {
		if _, err := fmt.Fprintf(w, "Only in new: %s\n", k); err != nil {
			return err
		}
	}
	for _, m := range d.Mismatches {
		if _, err := fmt.Fprintf(w, "%s:\t%s\n", m.Key, strings.Join(m.Columns, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteDiffSummary writes category counts to the given writer.
func WriteDiffSummary(w io.Writer, d *mapping.Diff) {
	fmt.Fprintf(w, "\nComparison Summary (%d keys):\n", d.Total())

	// Sort categories by count descending
	type catCount struct {
		cat   mapping.Category
		count int
	}
	var sorted []catCount
	for cat, count := range d.Counts() {
		sorted = append(sorted, catCount{cat, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].cat < sorted[j].cat
	})

	for _, cc := range sorted {
		fmt.Fprintf(w, "  %-20s%d\n", cc.cat, cc.count)
	}

	// Columns that differ most often across shared keys
	colCounts := make(map[string]int)
	for _, m := range d.Mismatches {
		for _, c := range m.Columns {
			colCounts[c]++
		}
	}
	if len(colCounts) == 0 {
		return
	}
	cols := make([]string, 0, len(colCounts))
	for c := range colCounts {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		if colCounts[cols[i]] != colCounts[cols[j]] {
			return colCounts[cols[i]] > colCounts[cols[j]]
		}
		return cols[i] < cols[j]
	})
	fmt.Fprintf(w, "\n  Mismatching columns:\n")
	for _, c := range cols {
		fmt.Fprintf(w, "    %-20s%d\n", c, colCounts[c])
	}
}

// WriteModeSummary writes how often each inheritance mode was assigned,
// most frequent first. Compound het annotations and low-relevance
// explanations are listed in their own sections after the modes.
func WriteModeSummary(w io.Writer, counts map[inheritance.Mode]int, records int) {
	fmt.Fprintf(w, "\nInheritance Mode Summary (%d records):\n", records)

	var modes, cmpHet, low []inheritance.Mode
	for m := range counts {
		switch {
		case m.IsCompoundHet():
			cmpHet = append(cmpHet, m)
		case m.IsLowRelevance():
			low = append(low, m)
		default:
			modes = append(modes, m)
		}
	}
	writeModeCounts(w, "", modes, counts)
	writeModeCounts(w, "Compound het:", cmpHet, counts)
	writeModeCounts(w, "No inheritance mode:", low, counts)
}

func writeModeCounts(w io.Writer, title string, modes []inheritance.Mode, counts map[inheritance.Mode]int) {
	if len(modes) == 0 {
		return
	}
	sort.Slice(modes, func(i, j int) bool {
		if counts[modes[i]] != counts[modes[j]] {
			return counts[modes[i]] > counts[modes[j]]
		}
		return modes[i] < modes[j]
	})
	if title != "" {
		fmt.Fprintf(w, "\n  %s\n", title)
	}
	for _, m := range modes {
		fmt.Fprintf(w, "  %-45s%d\n", m, counts[m])
	}
}
