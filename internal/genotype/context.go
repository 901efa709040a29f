package genotype

import "strings"

// Sex of an individual. Only used for sex-chromosome logic.
type Sex int

const (
	SexUnknown Sex = iota
	Male
	Female
)

// ParseSex maps "male"/"female" (any case) to a Sex. Anything else is SexUnknown.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male
	case "female", "f":
		return Female
	default:
		return SexUnknown
	}
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// ChromClass is the chromosome context a site is evaluated in.
type ChromClass int

const (
	Autosome ChromClass = iota
	ChrX
	ChrY
	ChrM
)

// ClassifyChrom derives the chromosome class from a raw CHROM token such as
// "1", "X", "chrY" or "M". Anything not X, Y or M is an autosome.
func ClassifyChrom(raw string) ChromClass {
	c := strings.TrimSpace(raw)
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}
	switch strings.ToUpper(c) {
	case "X":
		return ChrX
	case "Y":
		return ChrY
	case "M", "MT":
		return ChrM
	default:
		return Autosome
	}
}

func (c ChromClass) String() string {
	switch c {
	case ChrX:
		return "chrX"
	case ChrY:
		return "chrY"
	case ChrM:
		return "chrM"
	default:
		return "autosome"
	}
}

// IsSexChrom reports chrX or chrY.
func (c ChromClass) IsSexChrom() bool {
	return c == ChrX || c == ChrY
}
