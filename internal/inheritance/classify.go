// Package inheritance infers Mendelian inheritance modes from family
// genotype calls at a single site.
package inheritance

import (
	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/record"
)

// Result is the classification of one record.
type Result struct {
	GenotypeLabels   FamilyLabels `json:"genotype_label"`
	InheritanceModes []Mode       `json:"inheritance_modes"`
}

// Label returns the label for a role, or the empty label if absent.
func (r *Result) Label(role Role) genotype.Label {
	return r.GenotypeLabels[role]
}

// Classify validates a record and classifies it.
func Classify(rec *record.Record) (*Result, error) {
	in, err := Extract(rec)
	if err != nil {
		return nil, err
	}
	return ClassifyInput(in)
}

// ClassifyInput classifies an already extracted input. Results on the
// mitochondrial chromosome are not meaningful: every label is cleared and
// no modes are returned.
func ClassifyInput(in *Input) (*Result, error) {
	res, err := evaluate(in)
	if err != nil {
		return nil, err
	}
	if in.Chrom == genotype.ChrM {
		for role := range res.GenotypeLabels {
			res.GenotypeLabels[role] = genotype.Label{}
		}
		res.InheritanceModes = []Mode{}
	}
	return res, nil
}

func evaluate(in *Input) (*Result, error) {
	labels := LabelFamily(in)

	modes, err := ClassifyTrio(in, labels)
	if err != nil {
		return nil, err
	}
	modes = append(modes, SummarizeCompoundHets(in.CompoundHets)...)
	if len(modes) == 0 {
		modes = Explain(in, labels)
	}

	return &Result{
		GenotypeLabels:   labels,
		InheritanceModes: dedupe(modes),
	}, nil
}

// dedupe drops repeated modes, keeping first occurrences in order.
func dedupe(modes []Mode) []Mode {
	out := make([]Mode, 0, len(modes))
	seen := make(map[Mode]bool, len(modes))
	for _, m := range modes {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
