package mapping

// Category classifies the comparison result for a single key.
type Category string

const (
	CatMatch    Category = "match"
	CatMismatch Category = "mismatch"
	CatOnlyOld  Category = "only_old"
	CatOnlyNew  Category = "only_new"
)

// Mismatch lists the columns that differ for a key present in both tables.
type Mismatch struct {
	Key     string
	Columns []string
}

// Diff is the result of comparing two tables.
type Diff struct {
	OnlyOld    []string
	OnlyNew    []string
	Mismatches []Mismatch
	Matches    int
}

// Counts returns the number of keys per category.
func (d *Diff) Counts() map[Category]int {
	return map[Category]int{
		CatMatch:    d.Matches,
		CatMismatch: len(d.Mismatches),
		CatOnlyOld:  len(d.OnlyOld),
		CatOnlyNew:  len(d.OnlyNew),
	}
}

// Total returns the number of distinct keys across both tables.
func (d *Diff) Total() int {
	return d.Matches + len(d.Mismatches) + len(d.OnlyOld) + len(d.OnlyNew)
}

// Compare diffs two tables by key. Keys keep their table order. Columns
// are compared over the union of both tables' columns, old columns first;
// a column missing on one side counts as a mismatch.
func Compare(before, after *Table) *Diff {
	d := &Diff{}
	for _, k := range before.Keys {
		if _, ok := after.rows[k]; !ok {
			d.OnlyOld = append(d.OnlyOld, k)
		}
	}
	for _, k := range after.Keys {
		if _, ok := before.rows[k]; !ok {
			d.OnlyNew = append(d.OnlyNew, k)
		}
	}

	columns := append([]string(nil), before.Columns...)
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	for _, c := range after.Columns {
		if !seen[c] {
			columns = append(columns, c)
		}
	}

	for _, k := range before.Keys {
		if _, ok := after.rows[k]; !ok {
			continue
		}
		var diffCols []string
		for _, c := range columns {
			ov, ook := before.Value(k, c)
			nv, nok := after.Value(k, c)
			if ook != nok || ov != nv {
				diffCols = append(diffCols, c)
			}
		}
		if len(diffCols) == 0 {
			d.Matches++
			continue
		}
		d.Mismatches = append(d.Mismatches, Mismatch{Key: k, Columns: diffCols})
	}
	return d
}
