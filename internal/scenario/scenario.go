// Package scenario enumerates synthetic trios over every combination of
// biallelic parent and child genotypes and the chromosome, sex and novoPP
// conditions that change how they are classified.
package scenario

import (
	"fmt"
	"strings"

	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

// Genotypes are the calls enumerated for each trio member.
var Genotypes = []string{"0/0", "0/1", "1/1"}

var (
	defaultConditions = []string{
		"autosome",
		"chrX - male child",
		"chrY - male child",
		"chrX - female child",
		"chrY - female child",
	}
	// 0/0, 0/0, 0/1 is where novoPP and the sex chromosome de novo branch matter.
	deNovoHetConditions = []string{
		"autosome - novocaller high",
		"autosome - novocaller low",
		"chrX - male child",
		"chrY - male child",
		"chrX - female child - novoPP=0",
		"chrX - female child - novoPP=None",
		"chrY - female child",
	}
	deNovoHomConditions = []string{
		"autosome",
		"chrX - male child - novoPP=0",
		"chrX - male child - novoPP=None",
		"chrY - male child - novoPP=0",
		"chrY - male child - novoPP=None",
		"chrX - female child",
		"chrY - female child",
	}
)

// Condition is a named site context.
type Condition struct {
	Name    string
	Chrom   string
	SelfSex string
	// NovoPP is nil when the record carries no novoPP.
	NovoPP *float64
}

// ParseCondition derives the context from a condition name such as
// "chrX - female child - novoPP=None". The chromosome is the first word;
// the child is female if the name says so; novoPP is 1 for
// "novocaller high", absent for "novoPP=None" and 0 otherwise.
func ParseCondition(name string) Condition {
	c := Condition{Name: name, Chrom: "1", SelfSex: "male"}

	first, _, _ := strings.Cut(name, " ")
	if first != "autosome" {
		c.Chrom = strings.TrimPrefix(first, "chr")
	}
	if strings.Contains(name, "female") {
		c.SelfSex = "female"
	}
	if !strings.Contains(name, "novoPP=None") {
		pp := 0.0
		if strings.Contains(name, "novocaller high") {
			pp = 1
		}
		c.NovoPP = &pp
	}
	return c
}

// ConditionsFor returns the conditions evaluated for a trio.
func ConditionsFor(mother, father, self string) []Condition {
	names := defaultConditions
	if mother == "0/0" && father == "0/0" {
		switch self {
		case "0/1":
			names = deNovoHetConditions
		case "1/1":
			names = deNovoHomConditions
		}
	}
	conds := make([]Condition, len(names))
	for i, n := range names {
		conds[i] = ParseCondition(n)
	}
	return conds
}

// Case is one synthetic trio under one condition.
type Case struct {
	Mother, Father, Self string
	Condition            Condition
}

// Record builds the variant record for the case.
func (c Case) Record() *record.Record {
	return &record.Record{
		SampleGeno: []record.SampleGeno{
			{Role: "self", NumGT: c.Self, Sex: c.Condition.SelfSex},
			{Role: "mother", NumGT: c.Mother, Sex: "female"},
			{Role: "father", NumGT: c.Father, Sex: "male"},
		},
		Variant: record.Variant{Chrom: record.Chrom(c.Condition.Chrom)},
		NovoPP:  c.Condition.NovoPP,
	}
}

// Cases enumerates every trio except all hom-ref, mother outermost.
func Cases() []Case {
	var cases []Case
	for _, m := range Genotypes {
		for _, f := range Genotypes {
			for _, s := range Genotypes {
				if m == "0/0" && f == "0/0" && s == "0/0" {
					continue
				}
				for _, cond := range ConditionsFor(m, f, s) {
					cases = append(cases, Case{Mother: m, Father: f, Self: s, Condition: cond})
				}
			}
		}
	}
	return cases
}

// Row is a classified case.
type Row struct {
	Case
	Result *inheritance.Result
}

// Run classifies every case.
func Run(cases []Case) ([]Row, error) {
	rows := make([]Row, 0, len(cases))
	for _, c := range cases {
		res, err := inheritance.Classify(c.Record())
		if err != nil {
			return nil, fmt.Errorf("scenario %s %s %s (%s): %w", c.Mother, c.Father, c.Self, c.Condition.Name, err)
		}
		rows = append(rows, Row{Case: c, Result: res})
	}
	return rows, nil
}
