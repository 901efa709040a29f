package genotype

import (
	"fmt"
	"strings"
)

// Kind is the semantic class of a genotype call.
type Kind int

const (
	KindNone            Kind = iota // wiped, renders as ""
	KindMissing                     // either allele uncalled
	KindHomRef                      // 0/0
	KindHet                         // 0/N
	KindHomAlt                      // N/N
	KindMultiallelicHet             // N/M, N != M, both alternate
	KindHemiRef                     // male 0/0 on chrX or chrY
	KindHemiAlt                     // male N/N on chrX or chrY
	KindFemaleChrY                  // female on chrY, placeholder
	KindSexInconsistent             // call impossible for the individual's sex
)

// MultiallelicKeyword appears in every label that refers to a multiallelic context.
const MultiallelicKeyword = "multiallelic"

// MultiallelicAddon is appended to labels of individuals in a multiallelic family.
const MultiallelicAddon = " (" + MultiallelicKeyword + " in family)"

var kindText = [...]string{
	KindNone:            "",
	KindMissing:         "missing",
	KindHomRef:          "homo ref",
	KindHet:             "het",
	KindHomAlt:          "homo alt",
	KindMultiallelicHet: "het alt/alt -  " + MultiallelicKeyword,
	KindHemiRef:         "hemi ref",
	KindHemiAlt:         "hemi alt",
	KindFemaleChrY:      "-",
	KindSexInconsistent: "false",
}

// Kinds returns every label kind a call can be assigned, excluding KindNone.
func Kinds() []Kind {
	return []Kind{
		KindMissing, KindHomRef, KindHet, KindHomAlt, KindMultiallelicHet,
		KindHemiRef, KindHemiAlt, KindFemaleChrY, KindSexInconsistent,
	}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindText) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindText[k]
}

// Label is the genotype label of one individual. Labels are values: a label
// carrying the multiallelic addon does not compare equal to its bare form.
type Label struct {
	Kind                 Kind
	MultiallelicInFamily bool
}

// Bare labels, one per kind.
var (
	LabelMissing         = Label{Kind: KindMissing}
	LabelHomRef          = Label{Kind: KindHomRef}
	LabelHet             = Label{Kind: KindHet}
	LabelHomAlt          = Label{Kind: KindHomAlt}
	LabelMultiallelicHet = Label{Kind: KindMultiallelicHet}
	LabelHemiRef         = Label{Kind: KindHemiRef}
	LabelHemiAlt         = Label{Kind: KindHemiAlt}
	LabelFemaleChrY      = Label{Kind: KindFemaleChrY}
	LabelSexInconsistent = Label{Kind: KindSexInconsistent}
)

func (l Label) String() string {
	if l.MultiallelicInFamily {
		return l.Kind.String() + MultiallelicAddon
	}
	return l.Kind.String()
}

// MentionsMultiallelic reports whether the rendered label already refers to
// a multiallelic context.
func (l Label) MentionsMultiallelic() bool {
	return l.Kind == KindMultiallelicHet || l.MultiallelicInFamily
}

// WithMultiallelicAddon returns the label flagged as occurring in a
// multiallelic family. Labels that already mention it are returned unchanged.
func (l Label) WithMultiallelicAddon() Label {
	if l.MentionsMultiallelic() {
		return l
	}
	l.MultiallelicInFamily = true
	return l
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(b []byte) error {
	parsed, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel parses the rendered form of a label.
func ParseLabel(s string) (Label, error) {
	var l Label
	if rest, ok := strings.CutSuffix(s, MultiallelicAddon); ok {
		s = rest
		l.MultiallelicInFamily = true
	}
	if s == "" {
		return l, nil
	}
	for _, k := range Kinds() {
		if k.String() == s {
			l.Kind = k
			return l, nil
		}
	}
	return Label{}, fmt.Errorf("unknown genotype label %q", s)
}

// LabelOf classifies one individual's call given their sex and the site's
// chromosome class. Every input maps to exactly one label.
func LabelOf(g Genotype, sex Sex, chrom ChromClass) Label {
	if g.HasMissing() {
		if sex == Female && chrom == ChrY && g.A1 == MissingAllele && g.A2 == MissingAllele {
			return LabelFemaleChrY
		}
		return LabelMissing
	}

	if sex == Female && chrom == ChrY {
		if g.IsHomRef() {
			return LabelFemaleChrY
		}
		return LabelSexInconsistent
	}

	if sex == Male && chrom.IsSexChrom() {
		if g.A1 != g.A2 {
			return LabelSexInconsistent
		}
		if g.A1 == 0 {
			return LabelHemiRef
		}
		return LabelHemiAlt
	}

	switch {
	case g.IsHomRef():
		return LabelHomRef
	case g.IsHet():
		return LabelHet
	case g.A1 == g.A2:
		return LabelHomAlt
	default:
		return LabelMultiallelicHet
	}
}
