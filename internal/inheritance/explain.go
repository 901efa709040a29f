package inheritance

import "github.com/inodb/inhmode/internal/genotype"

// Explain returns the reason no inheritance mode was found for a complete
// trio. It returns nil for anything but a complete trio.
func Explain(in *Input, labels FamilyLabels) []Mode {
	t, ok := newTrio(in, labels)
	if !ok {
		return nil
	}

	switch {
	case labels.Contains(genotype.LabelMissing):
		return []Mode{ModeLowMissingCalls}
	case genotype.IsMultiallelic(in.Genotypes()...):
		return []Mode{ModeLowMultiallelic}
	case labels.Contains(genotype.LabelSexInconsistent):
		return []Mode{ModeLowMismatchingXY}
	case t.mother.IsHomAlt() || (t.father.IsHomAlt() && t.fatherLabel != genotype.LabelHemiAlt):
		return []Mode{ModeLowHomozygousParent}
	case carries(t.mother) && carries(t.father):
		return []Mode{ModeLowBothParents}
	}
	return []Mode{ModeLowOther}
}

// carries reports a het or hom-alt call.
func carries(g genotype.Genotype) bool {
	return g.IsHet() || g.IsHomAlt()
}
