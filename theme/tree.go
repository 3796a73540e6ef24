// Package theme implements the site's theme layer: a generic token tree,
// the deep-merge used to overlay site customizations onto a base theme,
// and mode-aware color resolution.
//
// A theme is a nested record of tokens. Scalar leaves (strings, numbers,
// booleans) carry values, object-valued keys group related tokens, and
// color modes live under colors.modes keyed by mode name. Sites customize
// a theme by supplying a sparse override tree that is deep-merged onto a
// complete base preset, inheriting every token they do not mention.
package theme

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tree is a nested record of theme tokens. Values are scalars, []any
// sequences, or nested Trees.
type Tree map[string]any

// Load decodes a token tree from YAML. An empty document yields an empty
// tree. Nested mappings are normalized to Tree so merge inputs are uniform
// regardless of how the decoder typed them.
func Load(r io.Reader) (Tree, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Tree{}, nil
		}
		return nil, fmt.Errorf("theme: decode tree: %w", err)
	}
	return normalizeTree(raw), nil
}

// LoadFile reads and decodes a token tree from a YAML file.
func LoadFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme: open %s: %w", path, err)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("theme: load %s: %w", path, err)
	}
	return t, nil
}

// Get walks the tree along path and returns the value found there.
func (t Tree) Get(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := t
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := asTree(v)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// String returns the string leaf at path, or "" when absent or non-string.
func (t Tree) String(path ...string) string {
	v, ok := t.Get(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Sub returns the nested tree at path, or nil when absent or scalar.
func (t Tree) Sub(path ...string) Tree {
	v, ok := t.Get(path...)
	if !ok {
		return nil
	}
	sub, _ := asTree(v)
	return sub
}

// asTree reports whether v is a nested record, unifying the map types the
// YAML decoder and Tree literals produce.
func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	}
	return nil, false
}

// normalizeTree rebuilds a decoded mapping as a Tree, converting nested
// maps (including non-string-keyed ones yaml may produce) and sequence
// elements recursively.
func normalizeTree(m map[string]any) Tree {
	out := make(Tree, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeTree(val)
	case Tree:
		return normalizeTree(val)
	case map[any]any:
		out := make(Tree, len(val))
		for k, e := range val {
			out[fmt.Sprint(k)] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
