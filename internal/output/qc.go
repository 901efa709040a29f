package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/inhmode/internal/qc"
)

// WriteCoverage writes mean coverage as a chromosome by sample table.
// Cells without any call are left empty.
func WriteCoverage(w io.Writer, c *qc.Coverage) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "chrom\t%s\n", strings.Join(c.Samples, "\t"))
	for _, chrom := range c.Chroms {
		cells := make([]string, len(c.Samples))
		for i, s := range c.Samples {
			if mean, ok := c.Mean(chrom, s); ok {
				cells[i] = strconv.FormatFloat(mean, 'f', 1, 64)
			}
		}
		fmt.Fprintf(bw, "%s\t%s\n", chrom, strings.Join(cells, "\t"))
	}
	return bw.Flush()
}

// WriteCrosstab writes genotype counts as a genotype by chromosome table
// with a trailing total column.
func WriteCrosstab(w io.Writer, x *qc.Crosstab) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "GT_%s\t%s\ttotal\n", x.Role, strings.Join(x.Chroms, "\t"))
	for _, gt := range x.Genotypes {
		bw.WriteString(gt)
		for _, chrom := range x.Chroms {
			fmt.Fprintf(bw, "\t%d", x.Count(gt, chrom))
		}
		fmt.Fprintf(bw, "\t%d\n", x.Total(gt))
	}
	return bw.Flush()
}
