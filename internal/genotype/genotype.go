// Package genotype provides genotype call parsing and per-individual
// genotype labeling for sex and chromosome context.
package genotype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MissingAllele marks an uncalled allele position.
const MissingAllele = -1

// ErrInvalidGenotype is returned when a genotype string cannot be parsed.
var ErrInvalidGenotype = errors.New("invalid genotype")

// Genotype is a diploid call as an ordered pair of allele indices.
// 0 is the reference allele, 1 and above are alternate alleles.
type Genotype struct {
	A1 int
	A2 int
}

// Parse parses a genotype such as "0/1", "1|1" or "./.".
func Parse(s string) (Genotype, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, "/|")
	if i < 0 {
		return Genotype{}, fmt.Errorf("%w %q: expected two alleles separated by '/' or '|'", ErrInvalidGenotype, s)
	}

	a1, err := parseAllele(s[:i])
	if err != nil {
		return Genotype{}, fmt.Errorf("%w %q: %v", ErrInvalidGenotype, s, err)
	}
	a2, err := parseAllele(s[i+1:])
	if err != nil {
		return Genotype{}, fmt.Errorf("%w %q: %v", ErrInvalidGenotype, s, err)
	}
	return Genotype{A1: a1, A2: a2}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and tables.
func MustParse(s string) Genotype {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

func parseAllele(s string) (int, error) {
	if s == "." {
		return MissingAllele, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad allele %q", s)
	}
	return n, nil
}

// String returns the unphased "a/b" form.
func (g Genotype) String() string {
	return formatAllele(g.A1) + "/" + formatAllele(g.A2)
}

func formatAllele(a int) string {
	if a == MissingAllele {
		return "."
	}
	return strconv.Itoa(a)
}

// HasMissing reports whether either allele is uncalled.
func (g Genotype) HasMissing() bool {
	return g.A1 == MissingAllele || g.A2 == MissingAllele
}

// IsHomRef reports a 0/0 call.
func (g Genotype) IsHomRef() bool {
	return g.A1 == 0 && g.A2 == 0
}

// IsHet reports a call with one reference and one alternate allele, in either order.
func (g Genotype) IsHet() bool {
	if g.HasMissing() {
		return false
	}
	return (g.A1 == 0) != (g.A2 == 0)
}

// IsHomAlt reports a call with the same alternate allele twice.
func (g Genotype) IsHomAlt() bool {
	return !g.HasMissing() && g.A1 > 0 && g.A1 == g.A2
}

// MaxAllele returns the highest called allele index, or MissingAllele.
func (g Genotype) MaxAllele() int {
	return max(g.A1, g.A2)
}

// IsMultiallelic reports whether any call references a second alternate
// allele (index 2 or above). Missing alleles are skipped.
func IsMultiallelic(gts ...Genotype) bool {
	for _, g := range gts {
		if g.MaxAllele() >= 2 {
			return true
		}
	}
	return false
}
