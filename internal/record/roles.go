package record

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment is the family role and sex of a sample.
type Assignment struct {
	Role string
	Sex  string
}

// RoleMap assigns roles and sexes by sample ID, for record sets whose
// samplegeno entries carry only sample IDs.
type RoleMap map[string]Assignment

// ParseAssignment parses "role" or "role:sex", e.g. "mother:female".
func ParseAssignment(s string) (Assignment, error) {
	role, sex, _ := strings.Cut(strings.TrimSpace(s), ":")
	if role == "" {
		return Assignment{}, fmt.Errorf("role assignment %q: empty role", s)
	}
	return Assignment{Role: role, Sex: sex}, nil
}

// ParseRoleMap parses a sample ID → "role:sex" mapping.
func ParseRoleMap(entries map[string]string) (RoleMap, error) {
	m := make(RoleMap, len(entries))
	for id, v := range entries {
		a, err := ParseAssignment(v)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", id, err)
		}
		m[id] = a
	}
	return m, nil
}

// Apply overwrites role and sex for every entry whose sample ID is mapped.
// It returns the number of entries updated.
func (m RoleMap) Apply(r *Record) int {
	n := 0
	for i := range r.SampleGeno {
		a, ok := m.lookup(r.SampleGeno[i].SampleID)
		if !ok {
			continue
		}
		r.SampleGeno[i].Role = a.Role
		if a.Sex != "" {
			r.SampleGeno[i].Sex = a.Sex
		}
		n++
	}
	return n
}

// lookup falls back to a case-insensitive match; config files read through
// viper have lower-cased keys.
func (m RoleMap) lookup(id string) (Assignment, bool) {
	if a, ok := m[id]; ok {
		return a, true
	}
	for k, a := range m {
		if strings.EqualFold(k, id) {
			return a, true
		}
	}
	return Assignment{}, false
}

// String renders the map in stable order.
func (m RoleMap) String() string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + m[id].Role
		if m[id].Sex != "" {
			parts[i] += ":" + m[id].Sex
		}
	}
	return strings.Join(parts, ",")
}

// rolesParser applies a RoleMap to every record read from the wrapped parser.
type rolesParser struct {
	RecordParser
	roles RoleMap
}

// WithRoles wraps a parser so that every record has roles applied.
// An empty map returns the parser unchanged.
func WithRoles(p RecordParser, roles RoleMap) RecordParser {
	if len(roles) == 0 {
		return p
	}
	return &rolesParser{RecordParser: p, roles: roles}
}

func (p *rolesParser) Next() (*Record, error) {
	rec, err := p.RecordParser.Next()
	if rec != nil {
		p.roles.Apply(rec)
	}
	return rec, err
}
