package inheritance

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/record"
)

// trioCase describes a trio record. novoPP < -0.5 means absent.
type trioCase struct {
	mother, father, self string
	selfSex              string
	chrom                string
	novoPP               float64
}

const absent = -1.0

func (c trioCase) record() *record.Record {
	sex := c.selfSex
	if sex == "" {
		sex = "female"
	}
	chrom := c.chrom
	if chrom == "" {
		chrom = "1"
	}
	rec := &record.Record{
		SampleGeno: []record.SampleGeno{
			{Role: "self", NumGT: c.self, Sex: sex},
			{Role: "mother", NumGT: c.mother, Sex: "female"},
			{Role: "father", NumGT: c.father, Sex: "male"},
		},
		Variant: record.Variant{Chrom: record.Chrom(chrom)},
	}
	if c.novoPP != absent {
		pp := c.novoPP
		rec.NovoPP = &pp
	}
	return rec
}

func classify(t *testing.T, c trioCase) *Result {
	t.Helper()
	res, err := Classify(c.record())
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestClassify_Trio(t *testing.T) {
	tests := []struct {
		name string
		in   trioCase
		want []Mode
	}{
		{"novoPP medium", trioCase{mother: "0/0", father: "0/0", self: "0/1", novoPP: 0.5}, []Mode{ModeDeNovoMedium}},
		{"novoPP strong overrides pattern", trioCase{mother: "1/1", father: "1/1", self: "1/1", novoPP: 0.95}, []Mode{ModeDeNovoStrong}},
		{"novoPP 0.9 is medium", trioCase{mother: "0/0", father: "0/0", self: "0/1", novoPP: 0.9}, []Mode{ModeDeNovoMedium}},
		{"novoPP 0.1 falls through", trioCase{mother: "0/0", father: "0/0", self: "0/1", novoPP: 0.1}, []Mode{ModeDeNovoWeak}},
		{"de novo weak autosome", trioCase{mother: "0/0", father: "0/0", self: "0/1", novoPP: absent}, []Mode{ModeDeNovoWeak}},
		{"de novo chrX female novoPP 0", trioCase{mother: "0/0", father: "0/0", self: "0/1", chrom: "X", novoPP: 0}, []Mode{ModeDeNovoWeak}},
		{"de novo chrX female novoPP absent", trioCase{mother: "0/0", father: "0/0", self: "0/1", chrom: "X", novoPP: absent}, []Mode{ModeDeNovoChrXY}},
		{"de novo chrX male", trioCase{mother: "0/0", father: "0/0", self: "1/1", selfSex: "male", chrom: "X", novoPP: absent}, []Mode{ModeDeNovoChrXY}},
		{"de novo chrY male", trioCase{mother: "0/0", father: "0/0", self: "1/1", selfSex: "male", chrom: "chrY", novoPP: 0}, []Mode{ModeDeNovoWeak}},
		{"dominant paternal", trioCase{mother: "0/0", father: "0/1", self: "0/1", novoPP: absent}, []Mode{ModeDominantPaternal}},
		{"dominant paternal unordered het", trioCase{mother: "0/0", father: "1/0", self: "1/0", novoPP: absent}, []Mode{ModeDominantPaternal}},
		{"dominant maternal", trioCase{mother: "0/1", father: "0/0", self: "0/1", novoPP: absent}, []Mode{ModeDominantMaternal}},
		{"recessive", trioCase{mother: "0/1", father: "0/1", self: "1/1", novoPP: absent}, []Mode{ModeRecessive}},
		{"phased recessive", trioCase{mother: "0|1", father: "1|0", self: "1|1", novoPP: absent}, []Mode{ModeRecessive}},
		{
			"x-linked maternal",
			trioCase{mother: "0/1", father: "0/0", self: "1/1", selfSex: "male", chrom: "X", novoPP: absent},
			[]Mode{ModeXLinkedRecessiveMaternal, ModeXLinkedDominantMaternal},
		},
		{"x-linked dominant paternal female", trioCase{mother: "0/0", father: "1/1", self: "0/1", chrom: "X", novoPP: absent}, []Mode{ModeXLinkedDominantPaternal}},
		{"x-linked dominant paternal male", trioCase{mother: "0/0", father: "1/1", self: "1/1", selfSex: "male", chrom: "X", novoPP: absent}, []Mode{ModeXLinkedDominantPaternal}},
		{"y-linked", trioCase{mother: "0/0", father: "1/1", self: "1/1", selfSex: "male", chrom: "Y", novoPP: absent}, []Mode{ModeYLinkedDominant}},
		{"loss of heterozygosity paternal", trioCase{mother: "0/0", father: "0/1", self: "1/1", novoPP: absent}, []Mode{ModeLossOfHeterozygosity}},
		{"loss of heterozygosity chrX female", trioCase{mother: "0/1", father: "0/0", self: "1/1", chrom: "X", novoPP: absent}, []Mode{ModeLossOfHeterozygosity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classify(t, tt.in)
			assert.Equal(t, tt.want, res.InheritanceModes)
		})
	}
}

func TestClassify_Explanations(t *testing.T) {
	tests := []struct {
		name string
		in   trioCase
		want Mode
	}{
		{"missing call", trioCase{mother: "0/0", father: "0/0", self: "./.", novoPP: absent}, ModeLowMissingCalls},
		{"half missing call", trioCase{mother: "./0", father: "0/0", self: "0/1", novoPP: absent}, ModeLowMissingCalls},
		{"multiallelic", trioCase{mother: "0/2", father: "0/0", self: "0/1", novoPP: absent}, ModeLowMultiallelic},
		{"multiallelic with missing call", trioCase{mother: "0/2", father: "0/0", self: "./.", novoPP: absent}, ModeLowMultiallelic},
		{"male het on chrX", trioCase{mother: "0/0", father: "0/0", self: "0/1", selfSex: "male", chrom: "X", novoPP: absent}, ModeLowMismatchingXY},
		{"female call on chrY", trioCase{mother: "0/0", father: "0/1", self: "0/1", chrom: "Y", novoPP: absent}, ModeLowMismatchingXY},
		{"homozygous mother", trioCase{mother: "1/1", father: "0/0", self: "0/1", novoPP: absent}, ModeLowHomozygousParent},
		{"homozygous father", trioCase{mother: "0/0", father: "1/1", self: "0/1", novoPP: absent}, ModeLowHomozygousParent},
		{"both parents", trioCase{mother: "0/1", father: "0/1", self: "0/1", novoPP: absent}, ModeLowBothParents},
		{"hemizygous father is not homozygous", trioCase{mother: "0/0", father: "1/1", self: "0/0", chrom: "X", novoPP: absent}, ModeLowOther},
		{"other", trioCase{mother: "0/0", father: "0/0", self: "0/0", novoPP: absent}, ModeLowOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classify(t, tt.in)
			assert.Equal(t, []Mode{tt.want}, res.InheritanceModes)
		})
	}
}

func TestClassify_InvalidState(t *testing.T) {
	rec := trioCase{mother: "0/0", father: "0/0", self: "0/1", chrom: "X", novoPP: 0.05}.record()
	res, err := Classify(rec)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvalidState))

	var ise *InvalidStateError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, genotype.ChrX, ise.Chrom)
	assert.Equal(t, 0.05, ise.NovoPP)
}

func TestClassify_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rec   *record.Record
		field string
	}{
		{"nil record", nil, "record"},
		{
			"self missing",
			&record.Record{SampleGeno: []record.SampleGeno{{Role: "mother", NumGT: "0/1", Sex: "female"}}},
			"samplegeno",
		},
		{
			"empty role",
			&record.Record{SampleGeno: []record.SampleGeno{{NumGT: "0/1"}}},
			"samplegeno[0].samplegeno_role",
		},
		{
			"duplicate role",
			&record.Record{SampleGeno: []record.SampleGeno{
				{Role: "self", NumGT: "0/1"},
				{Role: "self", NumGT: "0/0"},
			}},
			"samplegeno[1].samplegeno_role",
		},
		{
			"bad genotype",
			&record.Record{SampleGeno: []record.SampleGeno{{Role: "self", NumGT: "0/x"}}},
			"samplegeno[0].samplegeno_numgt",
		},
		{
			"cmphet without impact",
			&record.Record{
				SampleGeno: []record.SampleGeno{{Role: "self", NumGT: "0/1"}},
				CmpHet:     []record.CmpHet{{Phase: "Phased"}},
			},
			"cmphet[0].comhet_impact_gene",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.rec)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrInvalidRecord))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestClassify_Labels(t *testing.T) {
	res := classify(t, trioCase{mother: "0/1", father: "0/0", self: "1/1", selfSex: "male", chrom: "X", novoPP: absent})
	assert.Equal(t, genotype.LabelHet, res.Label(RoleMother))
	assert.Equal(t, genotype.LabelHemiRef, res.Label(RoleFather))
	assert.Equal(t, genotype.LabelHemiAlt, res.Label(RoleSelf))
}

func TestClassify_MultiallelicLabels(t *testing.T) {
	res := classify(t, trioCase{mother: "1/2", father: "0/0", self: "./.", novoPP: absent})

	assert.Equal(t, "het alt/alt -  multiallelic", res.Label(RoleMother).String())
	assert.Equal(t, "homo ref (multiallelic in family)", res.Label(RoleFather).String())
	assert.Equal(t, "missing (multiallelic in family)", res.Label(RoleSelf).String())
	assert.Equal(t, []Mode{ModeLowMultiallelic}, res.InheritanceModes)
}

func TestClassify_Mitochondrial(t *testing.T) {
	for _, chrom := range []string{"M", "MT", "chrM"} {
		t.Run(chrom, func(t *testing.T) {
			rec := trioCase{mother: "0/0", father: "0/0", self: "0/1", chrom: chrom, novoPP: 0.95}.record()
			rec.CmpHet = []record.CmpHet{{Phase: "Phased", Impact: "STRONG"}}

			res, err := Classify(rec)
			require.NoError(t, err)
			require.Len(t, res.GenotypeLabels, 3)
			for role, l := range res.GenotypeLabels {
				assert.Equal(t, "", l.String(), "role %s", role)
			}
			assert.NotNil(t, res.InheritanceModes)
			assert.Empty(t, res.InheritanceModes)
		})
	}
}

func TestClassify_MitochondrialEvaluatesFirst(t *testing.T) {
	in, err := Extract(trioCase{mother: "0/0", father: "0/0", self: "0/1", chrom: "M", novoPP: 0.5}.record())
	require.NoError(t, err)

	res, err := evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, []Mode{ModeDeNovoMedium}, res.InheritanceModes)
	assert.Equal(t, genotype.LabelHet, res.Label(RoleSelf))
}

func TestClassify_CompoundHet(t *testing.T) {
	rec := trioCase{mother: "0/1", father: "0/1", self: "1/1", novoPP: absent}.record()
	rec.CmpHet = []record.CmpHet{
		{Phase: "Unphased", Impact: "WEAK"},
		{Phase: "Phased", Impact: "STRONG_PAIR"},
		{Phase: "Phased", Impact: "STRONG_PAIR"},
	}

	res, err := Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, []Mode{
		ModeRecessive,
		"Compound Het (Phased/strong_pair)",
		"Compound Het (Unphased/weak)",
	}, res.InheritanceModes)
}

func TestClassify_CompoundHetSuppressesExplanation(t *testing.T) {
	rec := trioCase{mother: "0/0", father: "0/0", self: "./.", novoPP: absent}.record()
	rec.CmpHet = []record.CmpHet{{Phase: "Phased", Impact: "MEDIUM"}}

	res, err := Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, []Mode{"Compound Het (Phased/medium)"}, res.InheritanceModes)
}

func TestClassify_SelfOnly(t *testing.T) {
	rec := &record.Record{
		SampleGeno: []record.SampleGeno{{Role: "self", NumGT: "0/1", Sex: "male"}},
		Variant:    record.Variant{Chrom: "7"},
	}
	res, err := Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, FamilyLabels{RoleSelf: genotype.LabelHet}, res.GenotypeLabels)
	assert.Empty(t, res.InheritanceModes)

	rec.CmpHet = []record.CmpHet{{Phase: "Unphased", Impact: "Strong"}}
	res, err = Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, []Mode{"Compound Het (Unphased/strong)"}, res.InheritanceModes)
}

func TestClassify_ExtraRoleMissingCall(t *testing.T) {
	rec := trioCase{mother: "0/1", father: "0/1", self: "1/1", novoPP: absent}.record()
	rec.SampleGeno = append(rec.SampleGeno, record.SampleGeno{Role: "sister", NumGT: "./.", Sex: "female"})

	res, err := Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, genotype.LabelMissing, res.Label("sister"))
	assert.Equal(t, []Mode{ModeLowMissingCalls}, res.InheritanceModes)
}

func TestResult_JSON(t *testing.T) {
	res := classify(t, trioCase{mother: "0/0", father: "0/0", self: "0/1", novoPP: 0.5})

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"genotype_label": {"self": "het", "mother": "homo ref", "father": "homo ref"},
		"inheritance_modes": ["de novo (medium)"]
	}`, string(b))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []Mode{"b", "a"}, dedupe([]Mode{"b", "a", "b", "a"}))
	assert.Equal(t, []Mode{}, dedupe(nil))
}
