// Package nested walks decoded JSON documents of arbitrarily nested objects
// and arrays by dotted key paths such as "variant.CHROM".
package nested

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Jeffail/gabs"
)

// Parse parses a JSON document.
func Parse(b []byte) (*gabs.Container, error) {
	doc, err := gabs.ParseJSON(b)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

// ParseFile parses the JSON document in path.
func ParseFile(path string) (*gabs.Container, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(b)
}

// Keys returns the sorted dotted paths of every leaf value in doc. Scalars,
// nulls and arrays of scalars are leaves. Other arrays are transparent: their
// elements contribute keys under the array's path.
// Each object or array level counts towards the depth; maxDepth < 0 means
// no limit.
func Keys(doc *gabs.Container, maxDepth int) []string {
	set := make(map[string]struct{})
	walkKeys(doc, nil, 0, maxDepth, set)

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func walkKeys(c *gabs.Container, prefix []string, depth, maxDepth int, set map[string]struct{}) {
	if maxDepth >= 0 && depth > maxDepth {
		return
	}
	switch c.Data().(type) {
	case []interface{}:
		children, _ := c.Children()
		for _, child := range children {
			walkKeys(child, prefix, depth+1, maxDepth, set)
		}
	case map[string]interface{}:
		children, _ := c.ChildrenMap()
		for key, child := range children {
			path := append(prefix[:len(prefix):len(prefix)], key)
			if isLeaf(child.Data()) {
				set[strings.Join(path, ".")] = struct{}{}
			}
			walkKeys(child, path, depth+1, maxDepth, set)
		}
	}
}

// Values collects every non-null value found at the dotted key, descending
// through arrays at any level. An array of scalars at the end of the path
// is flattened into the result.
func Values(doc *gabs.Container, key string) []interface{} {
	var out []interface{}
	collect(doc, strings.Split(key, "."), &out)
	return out
}

func collect(c *gabs.Container, keys []string, out *[]interface{}) {
	if len(keys) == 0 {
		return
	}

	switch c.Data().(type) {
	case []interface{}:
		children, _ := c.Children()
		for _, child := range children {
			collect(child, keys, out)
		}
		return
	case map[string]interface{}:
	default:
		return
	}

	children, _ := c.ChildrenMap()
	child, ok := children[keys[0]]
	if !ok {
		return
	}
	rest := keys[1:]

	switch v := child.Data().(type) {
	case map[string]interface{}:
		collect(child, rest, out)
	case []interface{}:
		if len(rest) == 0 && len(v) > 0 && !isContainer(v[0]) {
			*out = append(*out, v...)
			return
		}
		collect(child, rest, out)
	case nil:
	default:
		if len(rest) == 0 {
			*out = append(*out, v)
		}
	}
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}

// isLeaf reports a scalar, null, or an array holding no objects or arrays.
func isLeaf(v interface{}) bool {
	arr, ok := v.([]interface{})
	if !ok {
		return !isContainer(v)
	}
	for _, e := range arr {
		if isContainer(e) {
			return false
		}
	}
	return true
}
