package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/inodb/inhmode/internal/nested"
)

// WriteKeys writes one dotted key per line.
func WriteKeys(w io.Writer, keys []string) error {
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

// WriteFieldReport writes a human readable summary of a field's values.
func WriteFieldReport(w io.Writer, r nested.FieldReport) {
	fmt.Fprintf(w, "Field: %s\n", r.Field)
	fmt.Fprintf(w, "  %-20s%d\n", "items", r.Items)
	fmt.Fprintf(w, "  %-20s%d\n", "items with value", r.ItemsWithValue)
	fmt.Fprintf(w, "  %-20s%d\n", "max per item", r.MaxPerItem)
	fmt.Fprintf(w, "  %-20s%d\n", "values", r.Values)
	fmt.Fprintf(w, "  %-20s%d\n", "unique values", r.UniqueValues)

	if len(r.Examples) > 0 {
		fmt.Fprintf(w, "\n  Examples:\n")
		for _, ex := range r.Examples {
			parts := make([]string, len(ex))
			for i, v := range ex {
				parts[i] = fmt.Sprint(v)
			}
			fmt.Fprintf(w, "    %s\n", strings.Join(parts, ", "))
		}
	}
	if len(r.Top) > 0 {
		fmt.Fprintf(w, "\n  Most frequent:\n")
		for _, vc := range r.Top {
			fmt.Fprintf(w, "    %-40s%d\n", vc.Value, vc.Count)
		}
	}
}

// FieldTableHeader is the header of the per-field statistics table.
const FieldTableHeader = "field\titems_with_value\tvalues\tunique_values\texample1\texample2"

// WriteFieldTable writes one tab-separated statistics row per report.
// Examples are rendered as JSON arrays; a missing example is left empty.
func WriteFieldTable(w io.Writer, reports []nested.FieldReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, FieldTableHeader)
	for _, r := range reports {
		examples := [2]string{}
		for i := 0; i < len(r.Examples) && i < len(examples); i++ {
			b, err := json.Marshal(r.Examples[i])
			if err != nil {
				return fmt.Errorf("field %s: %w", r.Field, err)
			}
			examples[i] = string(b)
		}
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%s\t%s\n",
			r.Field, r.ItemsWithValue, r.Values, r.UniqueValues, examples[0], examples[1])
	}
	return bw.Flush()
}

// WriteValueLinks writes each value next to its cross-reference link.
func WriteValueLinks(w io.Writer, values, links []string) error {
	for i, v := range values {
		link := ""
		if i < len(links) {
			link = links[i]
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", v, link); err != nil {
			return err
		}
	}
	return nil
}
