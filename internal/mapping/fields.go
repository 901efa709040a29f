package mapping

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Column names used by the field-list helpers. A table missing any of them
// reads as if every cell in that column were empty.
const (
	colImport      = "do_import"
	colScope       = "scope"
	colSubEmbedded = "sub_embedding_group"
	colLinksTo     = "links_to"
	colLink        = "link"
)

// IDPlaceholder is replaced with a field value when building a database
// cross-reference link.
const IDPlaceholder = "<ID>"

// FieldPath returns the dotted search-result path of the field stored under
// key: "variant." for variant-scoped fields, the sub-embedding group's key,
// the field name, and ".display_title" when the field links to another item.
func FieldPath(t *Table, key string) (string, error) {
	if _, ok := t.Row(key); !ok {
		return "", fmt.Errorf("field %q not in mapping table", key)
	}
	cell := func(col string) string {
		v, _ := t.Value(key, col)
		return strings.TrimSpace(v)
	}

	var b strings.Builder
	if cell(colScope) == "variant" {
		b.WriteString("variant.")
	}
	if group := cell(colSubEmbedded); group != "" {
		var g struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal([]byte(group), &g); err != nil {
			return "", fmt.Errorf("field %q: invalid %s: %w", key, colSubEmbedded, err)
		}
		if g.Key != "" {
			b.WriteString(g.Key)
			b.WriteByte('.')
		}
	}
	b.WriteString(key)
	if cell(colLinksTo) != "" {
		b.WriteString(".display_title")
	}
	return b.String(), nil
}

func imported(t *Table, key string) bool {
	v, _ := t.Value(key, colImport)
	return strings.TrimSpace(v) == "Y"
}

// FieldList returns the paths of every imported field in t, in table order,
// followed by any extra paths not already listed.
func FieldList(t *Table, extra ...string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, key := range t.Keys {
		if !imported(t, key) {
			continue
		}
		p, err := FieldPath(t, key)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, p := range extra {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// Links maps field paths to their cross-reference link templates across
// tables. Only imported fields with a non-empty link are included; a later
// table overrides an earlier one for the same path.
func Links(tables ...*Table) (map[string]string, error) {
	links := make(map[string]string)
	for _, t := range tables {
		for _, key := range t.Keys {
			if !imported(t, key) {
				continue
			}
			link, _ := t.Value(key, colLink)
			link = strings.TrimSpace(link)
			if link == "" {
				continue
			}
			p, err := FieldPath(t, key)
			if err != nil {
				return nil, err
			}
			links[p] = link
		}
	}
	return links, nil
}

// DBXrefLinks expands each field's link template with its values. A field
// without a link yields an empty string per value.
func DBXrefLinks(links map[string]string, values map[string][]string) map[string][]string {
	out := make(map[string][]string, len(values))
	for field, vals := range values {
		tmpl := links[field]
		expanded := make([]string, len(vals))
		for i, v := range vals {
			if tmpl != "" {
				expanded[i] = strings.ReplaceAll(tmpl, IDPlaceholder, v)
			}
		}
		out[field] = expanded
	}
	return out
}
