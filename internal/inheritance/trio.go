package inheritance

import "github.com/inodb/inhmode/internal/genotype"

// trio is the view of a complete trio the cascade rules match against.
type trio struct {
	mother, father, self                genotype.Genotype
	motherLabel, fatherLabel, selfLabel genotype.Label
	selfSex                             genotype.Sex
	chrom                               genotype.ChromClass
	novoPP                              float64
}

func newTrio(in *Input, labels FamilyLabels) (*trio, bool) {
	mother, ok := in.Member(RoleMother)
	if !ok {
		return nil, false
	}
	father, ok := in.Member(RoleFather)
	if !ok {
		return nil, false
	}
	self, ok := in.Member(RoleSelf)
	if !ok {
		return nil, false
	}
	return &trio{
		mother:      mother.Genotype,
		father:      father.Genotype,
		self:        self.Genotype,
		motherLabel: labels[RoleMother],
		fatherLabel: labels[RoleFather],
		selfLabel:   labels[RoleSelf],
		selfSex:     self.Sex,
		chrom:       in.Chrom,
		novoPP:      in.NovoPP,
	}, true
}

func (t *trio) parentsHomRef() bool {
	return t.mother.IsHomRef() && t.father.IsHomRef()
}

// trioRule is one entry of the cascade. The first rule whose match
// returns true decides the outcome.
type trioRule struct {
	name    string
	match   func(t *trio) bool
	outcome func(t *trio) ([]Mode, error)
}

// emit returns an outcome yielding a fresh copy of modes.
func emit(modes ...Mode) func(*trio) ([]Mode, error) {
	return func(*trio) ([]Mode, error) {
		out := make([]Mode, len(modes))
		copy(out, modes)
		return out, nil
	}
}

// RuleSetVersion identifies the trio cascade below. Bump it whenever a rule's
// predicate, outcome or position changes.
const RuleSetVersion = "v2"

// novoPP thresholds; a value equal to a threshold falls to the next rule.
const (
	strongNovoPP = 0.9
	mediumNovoPP = 0.1
)

// trioRules is the ordered cascade.
var trioRules = []trioRule{
	{
		name:    "de_novo_strong",
		match:   func(t *trio) bool { return t.novoPP > strongNovoPP },
		outcome: emit(ModeDeNovoStrong),
	},
	{
		name:    "de_novo_medium",
		match:   func(t *trio) bool { return t.novoPP > mediumNovoPP },
		outcome: emit(ModeDeNovoMedium),
	},
	{
		name: "de_novo_weak_autosome",
		match: func(t *trio) bool {
			return t.parentsHomRef() && t.self.IsHet() && t.chrom == genotype.Autosome
		},
		outcome: emit(ModeDeNovoWeak),
	},
	{
		name: "de_novo_sex_chrom",
		match: func(t *trio) bool {
			if !t.parentsHomRef() {
				return false
			}
			femaleX := t.self.IsHet() && t.selfSex == genotype.Female && t.chrom == genotype.ChrX
			maleXY := t.self.IsHomAlt() && t.selfSex == genotype.Male && t.chrom.IsSexChrom()
			return femaleX || maleXY
		},
		outcome: func(t *trio) ([]Mode, error) {
			switch t.novoPP {
			case 0:
				return []Mode{ModeDeNovoWeak}, nil
			case -1:
				return []Mode{ModeDeNovoChrXY}, nil
			}
			return nil, &InvalidStateError{Rule: "de_novo_sex_chrom", NovoPP: t.novoPP, Chrom: t.chrom}
		},
	},
	{
		name: "dominant_paternal",
		match: func(t *trio) bool {
			return t.mother.IsHomRef() && t.fatherLabel == genotype.LabelHet && t.self.IsHet()
		},
		outcome: emit(ModeDominantPaternal),
	},
	{
		name: "dominant_maternal",
		match: func(t *trio) bool {
			return t.mother.IsHet() && t.father.IsHomRef() && t.self.IsHet()
		},
		outcome: emit(ModeDominantMaternal),
	},
	{
		name: "recessive",
		match: func(t *trio) bool {
			return t.mother.IsHet() && t.father.IsHet() && t.self.IsHomAlt()
		},
		outcome: emit(ModeRecessive),
	},
	{
		name: "x_linked_maternal",
		match: func(t *trio) bool {
			return t.mother.IsHet() && t.father.IsHomRef() && t.self.IsHomAlt() &&
				t.selfSex == genotype.Male && t.chrom == genotype.ChrX
		},
		outcome: emit(ModeXLinkedRecessiveMaternal, ModeXLinkedDominantMaternal),
	},
	{
		name: "x_linked_dominant_paternal",
		match: func(t *trio) bool {
			return t.mother.IsHomRef() && t.fatherLabel == genotype.LabelHemiAlt &&
				t.chrom == genotype.ChrX &&
				(t.selfLabel == genotype.LabelHemiAlt || t.selfLabel == genotype.LabelHet)
		},
		outcome: emit(ModeXLinkedDominantPaternal),
	},
	{
		name: "y_linked_dominant",
		match: func(t *trio) bool {
			return t.fatherLabel == genotype.LabelHemiAlt && t.chrom == genotype.ChrY &&
				t.selfLabel == genotype.LabelHemiAlt
		},
		outcome: emit(ModeYLinkedDominant),
	},
	{
		name: "loss_of_heterozygosity",
		match: func(t *trio) bool {
			oneParent := (t.mother.IsHet() && t.father.IsHomRef()) ||
				(t.mother.IsHomRef() && t.father.IsHet())
			return oneParent && t.self.IsHomAlt()
		},
		outcome: emit(ModeLossOfHeterozygosity),
	},
}

// ClassifyTrio runs the rule cascade. It returns no modes unless self,
// mother and father are all present, and none when any label is exactly
// missing or sex-inconsistent, or the site is multiallelic.
func ClassifyTrio(in *Input, labels FamilyLabels) ([]Mode, error) {
	t, ok := newTrio(in, labels)
	if !ok {
		return nil, nil
	}
	if labels.Contains(genotype.LabelMissing) ||
		labels.Contains(genotype.LabelSexInconsistent) ||
		genotype.IsMultiallelic(in.Genotypes()...) {
		return nil, nil
	}

	for _, r := range trioRules {
		if r.match(t) {
			return r.outcome(t)
		}
	}
	return nil, nil
}
