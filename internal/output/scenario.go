package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/scenario"
)

var scenarioColumns = []string{
	"genotype_mother",
	"genotype_father",
	"genotype_self",
	"condition",
	"genotype_label_mother",
	"genotype_label_father",
	"genotype_label_self",
	"inheritance_modes",
}

// WriteScenarios writes the scenario table as TSV with a header line.
func WriteScenarios(w io.Writer, rows []scenario.Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(scenarioColumns, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range rows {
		values := []string{
			r.Mother,
			r.Father,
			r.Self,
			r.Condition.Name,
			r.Result.Label(inheritance.RoleMother).String(),
			r.Result.Label(inheritance.RoleFather).String(),
			r.Result.Label(inheritance.RoleSelf).String(),
			inheritance.Join(r.Result.InheritanceModes, ModeSeparator),
		}
		if _, err := bw.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
