package nested

import (
	"fmt"
	"sort"

	"github.com/Jeffail/gabs"
)

// FieldReport summarizes how a field is populated across a list of items.
type FieldReport struct {
	Field          string
	Items          int
	ItemsWithValue int
	MaxPerItem     int
	Values         int
	UniqueValues   int
	// Examples are the values of the first two items that have any.
	Examples [][]interface{}
	// Top holds the most frequent values, most frequent first.
	Top []ValueCount
}

// ValueCount is a distinct value and how often it occurs.
type ValueCount struct {
	Value string
	Count int
}

// Report computes a FieldReport for field over the items of a JSON array
// (or a single item). At most top distinct values are kept.
func Report(doc *gabs.Container, field string, top int) FieldReport {
	items := []*gabs.Container{doc}
	if _, ok := doc.Data().([]interface{}); ok {
		items, _ = doc.Children()
	}

	r := FieldReport{Field: field, Items: len(items)}
	counts := make(map[string]int)
	for _, item := range items {
		vals := Values(item, field)
		if len(vals) == 0 {
			continue
		}
		r.ItemsWithValue++
		r.Values += len(vals)
		if len(vals) > r.MaxPerItem {
			r.MaxPerItem = len(vals)
		}
		if len(r.Examples) < 2 {
			r.Examples = append(r.Examples, vals)
		}
		for _, v := range vals {
			counts[fmt.Sprint(v)]++
		}
	}
	r.UniqueValues = len(counts)

	for v, n := range counts {
		r.Top = append(r.Top, ValueCount{Value: v, Count: n})
	}
	sort.Slice(r.Top, func(i, j int) bool {
		if r.Top[i].Count != r.Top[j].Count {
			return r.Top[i].Count > r.Top[j].Count
		}
		return r.Top[i].Value < r.Top[j].Value
	})
	if top >= 0 && len(r.Top) > top {
		r.Top = r.Top[:top]
	}
	return r
}

// ReportAll computes a FieldReport for each field, in order. With no fields
// every leaf path in doc is reported.
func ReportAll(doc *gabs.Container, fields []string, top int) []FieldReport {
	if len(fields) == 0 {
		fields = Keys(doc, -1)
	}
	reports := make([]FieldReport, len(fields))
	for i, f := range fields {
		reports[i] = Report(doc, f, top)
	}
	return reports
}
