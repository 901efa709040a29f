package inheritance

import (
	"fmt"
	"strings"
)

// Mode is an inheritance mode, or an explanation of why none applies.
type Mode string

// Inheritance modes produced by the trio rules.
const (
	ModeDeNovoStrong             Mode = "de novo (strong)"
	ModeDeNovoMedium             Mode = "de novo (medium)"
	ModeDeNovoWeak               Mode = "de novo (weak)"
	ModeDeNovoChrXY              Mode = "de novo (chrXY)"
	ModeDominantPaternal         Mode = "dominant (paternal)"
	ModeDominantMaternal         Mode = "dominant (maternal)"
	ModeRecessive                Mode = "recessive"
	ModeXLinkedRecessiveMaternal Mode = "X-linked recessive (Maternal)"
	ModeXLinkedDominantMaternal  Mode = "X-linked dominant (Maternal)"
	ModeXLinkedDominantPaternal  Mode = "X-linked dominant (Paternal)"
	ModeYLinkedDominant          Mode = "Y-linked dominant"
	ModeLossOfHeterozygosity     Mode = "Loss of Heteozyogousity"
)

// Explanations used when no inheritance mode fits.
const (
	ModeLowMissingCalls     Mode = "Low relevance, missing call(s) in family"
	ModeLowMultiallelic     Mode = "Low relevance, multiallelic site family"
	ModeLowMismatchingXY    Mode = "Low relevance, mismatching chrXY genotype(s)"
	ModeLowHomozygousParent Mode = "Low relevance, homozygous in a parent"
	ModeLowBothParents      Mode = "Low relevance, present in both parent(s)"
	ModeLowOther            Mode = "Low relevance, other"
)

const lowRelevancePrefix = "Low relevance, "

// CompoundHetMode renders a compound het caller annotation as a mode,
// e.g. "Compound Het (Phased/strong_pair)".
func CompoundHetMode(phase, impact string) Mode {
	return Mode(fmt.Sprintf("Compound Het (%s/%s)", phase, strings.ToLower(impact)))
}

// IsLowRelevance reports whether m is an explanation rather than a mode.
func (m Mode) IsLowRelevance() bool {
	return strings.HasPrefix(string(m), lowRelevancePrefix)
}

// IsCompoundHet reports whether m came from a compound het annotation.
func (m Mode) IsCompoundHet() bool {
	return strings.HasPrefix(string(m), "Compound Het (")
}

// Join renders modes separated by sep.
func Join(modes []Mode, sep string) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, sep)
}
