package inheritance

import "github.com/inodb/inhmode/internal/genotype"

// FamilyLabels maps each role to its genotype label.
type FamilyLabels map[Role]genotype.Label

// LabelFamily labels every member. At a multiallelic site every label that
// does not already mention it gets the multiallelic addon.
func LabelFamily(in *Input) FamilyLabels {
	multi := genotype.IsMultiallelic(in.Genotypes()...)
	labels := make(FamilyLabels, len(in.Members))
	for _, m := range in.Members {
		l := genotype.LabelOf(m.Genotype, m.Sex, in.Chrom)
		if multi {
			l = l.WithMultiallelicAddon()
		}
		labels[m.Role] = l
	}
	return labels
}

// Contains reports whether any role carries exactly the label l.
// A label with the multiallelic addon does not match its bare form.
func (fl FamilyLabels) Contains(l genotype.Label) bool {
	for _, v := range fl {
		if v == l {
			return true
		}
	}
	return false
}

// Strings renders the labels keyed by role name.
func (fl FamilyLabels) Strings() map[string]string {
	out := make(map[string]string, len(fl))
	for r, l := range fl {
		out[string(r)] = l.String()
	}
	return out
}
