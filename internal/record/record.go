// Package record provides the variant-sample record schema and readers for
// JSON record files.
package record

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Record is one variant sample with its family genotypes.
type Record struct {
	SampleGeno []SampleGeno `json:"samplegeno"`
	Variant    Variant      `json:"variant"`
	NovoPP     *float64     `json:"novoPP,omitempty"`
	CmpHet     []CmpHet     `json:"cmphet,omitempty"`
}

// SampleGeno holds the call of one family member.
type SampleGeno struct {
	Role     string `json:"samplegeno_role"`
	NumGT    string `json:"samplegeno_numgt"`
	Sex      string `json:"samplegeno_sex"`
	AD       string `json:"samplegeno_ad,omitempty"`
	SampleID string `json:"samplegeno_sampleid,omitempty"`
}

// Variant holds the site fields used for context and display.
type Variant struct {
	Chrom        Chrom  `json:"CHROM"`
	Pos          int64  `json:"POS,omitempty"`
	Ref          string `json:"REF,omitempty"`
	Alt          string `json:"ALT,omitempty"`
	DisplayTitle string `json:"display_title,omitempty"`
}

// CmpHet is one compound heterozygous caller annotation.
type CmpHet struct {
	Phase  string `json:"comhet_phase"`
	Impact string `json:"comhet_impact_gene"`
}

// Chrom is a chromosome token. It decodes from a JSON string or number.
type Chrom string

// UnmarshalJSON accepts "X", "12" and 12.
func (c *Chrom) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Chrom(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("CHROM: expected string or number, got %s", b)
	}
	*c = Chrom(b)
	return nil
}

// NovoPPOrDefault returns novoPP, or -1 when it is absent.
func (r *Record) NovoPPOrDefault() float64 {
	if r.NovoPP == nil {
		return -1
	}
	return *r.NovoPP
}

// Title returns a display name for the variant.
func (r *Record) Title() string {
	if r.Variant.DisplayTitle != "" {
		return r.Variant.DisplayTitle
	}
	if r.Variant.Pos == 0 {
		return string(r.Variant.Chrom)
	}
	id := fmt.Sprintf("%s:%d", r.Variant.NormalizeChrom(), r.Variant.Pos)
	if r.Variant.Ref != "" || r.Variant.Alt != "" {
		id += " " + r.Variant.Ref + ">" + r.Variant.Alt
	}
	return id
}

// Sample returns the entry for a role.
func (r *Record) Sample(role string) (SampleGeno, bool) {
	for _, s := range r.SampleGeno {
		if s.Role == role {
			return s, true
		}
	}
	return SampleGeno{}, false
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	c := string(v.Chrom)
	if len(c) > 3 && c[:3] == "chr" {
		return c[3:]
	}
	return c
}
