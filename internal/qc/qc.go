// Package qc computes per-sample checks over variant records: mean read
// coverage per chromosome and genotype counts per chromosome. Together they
// show whether the reported sex of a sample agrees with its X and Y calls.
package qc

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inodb/inhmode/internal/record"
)

// Coverage holds the mean allele depth sum per chromosome and sample.
type Coverage struct {
	// Samples are sample IDs (or roles when a call has no ID) in first-seen order.
	Samples []string
	// Chroms are normalized chromosome names in SortChroms order.
	Chroms []string

	sums   map[cell]int
	counts map[cell]int
}

type cell struct{ row, col string }

// Mean returns the mean coverage of sample on chrom.
func (c *Coverage) Mean(chrom, sample string) (float64, bool) {
	n := c.counts[cell{chrom, sample}]
	if n == 0 {
		return 0, false
	}
	return float64(c.sums[cell{chrom, sample}]) / float64(n), true
}

// SiteCount returns how many calls contributed to the mean for sample on chrom.
func (c *Coverage) SiteCount(chrom, sample string) int {
	return c.counts[cell{chrom, sample}]
}

// ChromCoverage computes the mean of ref plus alt depth per chromosome for
// every sample. Calls with a missing or unparseable AD are skipped.
func ChromCoverage(recs []*record.Record) *Coverage {
	c := &Coverage{sums: make(map[cell]int), counts: make(map[cell]int)}
	samples := make(map[string]bool)
	chroms := make(map[string]bool)

	for _, rec := range recs {
		chrom := rec.Variant.NormalizeChrom()
		for _, s := range rec.SampleGeno {
			depth, ok := ParseDepth(s.AD)
			if !ok {
				continue
			}
			key := s.SampleID
			if key == "" {
				key = s.Role
			}
			if !samples[key] {
				samples[key] = true
				c.Samples = append(c.Samples, key)
			}
			chroms[chrom] = true
			c.sums[cell{chrom, key}] += depth
			c.counts[cell{chrom, key}]++
		}
	}
	c.Chroms = sortedKeys(chroms)
	return c
}

// ParseDepth sums the allele depths of an AD string such as "12/10" or
// "12,10,3".
func ParseDepth(ad string) (int, bool) {
	ad = strings.TrimSpace(ad)
	if ad == "" {
		return 0, false
	}
	parts := strings.FieldsFunc(ad, func(r rune) bool { return r == '/' || r == ',' })
	if len(parts) == 0 {
		return 0, false
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, false
		}
		total += n
	}
	return total, true
}

// Crosstab counts the genotypes of one family member per chromosome.
type Crosstab struct {
	Role string
	// Genotypes are the numeric genotypes seen, sorted.
	Genotypes []string
	Chroms    []string

	counts map[cell]int
}

// Count returns how many records have genotype gt on chrom.
func (x *Crosstab) Count(gt, chrom string) int {
	return x.counts[cell{gt, chrom}]
}

// Total returns the number of records with genotype gt on any chromosome.
func (x *Crosstab) Total(gt string) int {
	n := 0
	for _, chrom := range x.Chroms {
		n += x.counts[cell{gt, chrom}]
	}
	return n
}

// GenotypeCrosstab counts the numeric genotype of role per chromosome.
// Records without a call for role are skipped.
func GenotypeCrosstab(recs []*record.Record, role string) *Crosstab {
	x := &Crosstab{Role: role, counts: make(map[cell]int)}
	gts := make(map[string]bool)
	chroms := make(map[string]bool)

	for _, rec := range recs {
		s, ok := rec.Sample(role)
		if !ok {
			continue
		}
		chrom := rec.Variant.NormalizeChrom()
		gts[s.NumGT] = true
		chroms[chrom] = true
		x.counts[cell{s.NumGT, chrom}]++
	}

	for gt := range gts {
		x.Genotypes = append(x.Genotypes, gt)
	}
	sort.Strings(x.Genotypes)
	x.Chroms = sortedKeys(chroms)
	return x
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	SortChroms(keys)
	return keys
}

// SortChroms orders chromosome names numerically, then X, Y and M, then
// anything else alphabetically.
func SortChroms(chroms []string) {
	sort.Slice(chroms, func(i, j int) bool {
		ri, ni := chromRank(chroms[i])
		rj, nj := chromRank(chroms[j])
		if ri != rj {
			return ri < rj
		}
		if ni != nj {
			return ni < nj
		}
		return chroms[i] < chroms[j]
	})
}

func chromRank(c string) (rank, num int) {
	c = strings.TrimPrefix(c, "chr")
	if n, err := strconv.Atoi(c); err == nil {
		return 0, n
	}
	switch c {
	case "X":
		return 1, 0
	case "Y":
		return 2, 0
	case "M", "MT":
		return 3, 0
	}
	return 4, 0
}
