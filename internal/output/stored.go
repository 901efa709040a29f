package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/inhmode/internal/duckdb"
	"github.com/inodb/inhmode/internal/inheritance"
)

var storedColumns = []string{
	"run_id",
	"seq",
	"variant_id",
	"novoPP",
	"GT_mother",
	"GT_father",
	"GT_self",
	"GT_label_mother",
	"GT_label_father",
	"GT_label_self",
	"inheritance_modes",
}

// WriteStored writes results read back from a store as TSV.
func WriteStored(w io.Writer, results []duckdb.StoredResult) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(storedColumns, "\t") + "\n")

	for _, r := range results {
		novoPP := ""
		if r.NovoPP != nil {
			novoPP = strconv.FormatFloat(*r.NovoPP, 'g', -1, 64)
		}
		values := []string{r.RunID, strconv.Itoa(r.Seq), r.VariantID, novoPP}
		for _, role := range tableRoles {
			values = append(values, r.Genotypes[role])
		}
		for _, role := range tableRoles {
			values = append(values, r.Labels[role].String())
		}
		values = append(values, inheritance.Join(r.Modes, ModeSeparator))
		bw.WriteString(strings.Join(values, "\t") + "\n")
	}
	return bw.Flush()
}
