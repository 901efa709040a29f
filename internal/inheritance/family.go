package inheritance

import (
	"fmt"

	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/record"
)

// Role is a family member's relation to the proband.
type Role string

// Roles used by the trio rules. Any other role is labeled but otherwise ignored.
const (
	RoleSelf   Role = "self"
	RoleMother Role = "mother"
	RoleFather Role = "father"
)

// Member is one family member's parsed call.
type Member struct {
	Role     Role
	Genotype genotype.Genotype
	Sex      genotype.Sex
}

// Input is the validated, typed view of a record that the classifier works on.
type Input struct {
	Members      []Member
	Chrom        genotype.ChromClass
	RawChrom     string
	NovoPP       float64
	CompoundHets []record.CmpHet
}

// Member returns the member with the given role.
func (in *Input) Member(r Role) (Member, bool) {
	for _, m := range in.Members {
		if m.Role == r {
			return m, true
		}
	}
	return Member{}, false
}

// IsTrio reports whether self, mother and father are all present.
func (in *Input) IsTrio() bool {
	for _, r := range []Role{RoleSelf, RoleMother, RoleFather} {
		if _, ok := in.Member(r); !ok {
			return false
		}
	}
	return true
}

// Genotypes returns the calls of every member, in record order.
func (in *Input) Genotypes() []genotype.Genotype {
	gts := make([]genotype.Genotype, len(in.Members))
	for i, m := range in.Members {
		gts[i] = m.Genotype
	}
	return gts
}

// Extract validates a record and converts it to an Input.
func Extract(rec *record.Record) (*Input, error) {
	if rec == nil {
		return nil, &ValidationError{Field: "record", Message: "nil record"}
	}

	in := &Input{
		Members:  make([]Member, 0, len(rec.SampleGeno)),
		RawChrom: string(rec.Variant.Chrom),
		Chrom:    genotype.ClassifyChrom(string(rec.Variant.Chrom)),
		NovoPP:   rec.NovoPPOrDefault(),
	}

	seen := make(map[Role]bool, len(rec.SampleGeno))
	for i, sg := range rec.SampleGeno {
		field := fmt.Sprintf("samplegeno[%d]", i)
		if sg.Role == "" {
			return nil, &ValidationError{Field: field + ".samplegeno_role", Message: "empty role"}
		}
		role := Role(sg.Role)
		if seen[role] {
			return nil, &ValidationError{Field: field + ".samplegeno_role", Message: fmt.Sprintf("duplicate role %q", sg.Role)}
		}
		seen[role] = true

		gt, err := genotype.Parse(sg.NumGT)
		if err != nil {
			return nil, &ValidationError{Field: field + ".samplegeno_numgt", Message: err.Error()}
		}
		in.Members = append(in.Members, Member{
			Role:     role,
			Genotype: gt,
			Sex:      genotype.ParseSex(sg.Sex),
		})
	}

	if !seen[RoleSelf] {
		return nil, &ValidationError{Field: "samplegeno", Message: `role "self" is missing`}
	}

	for i, c := range rec.CmpHet {
		field := fmt.Sprintf("cmphet[%d]", i)
		if c.Phase == "" {
			return nil, &ValidationError{Field: field + ".comhet_phase", Message: "empty phase"}
		}
		if c.Impact == "" {
			return nil, &ValidationError{Field: field + ".comhet_impact_gene", Message: "empty impact"}
		}
	}
	in.CompoundHets = rec.CmpHet

	return in, nil
}
