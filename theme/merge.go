package theme

// Merge deep-merges zero or more override trees onto base and returns the
// combined tree. For every leaf path present in an override the rightmost
// override wins; leaves present only in base are retained. Object-valued
// keys are merged recursively key-by-key. Sequence values are replaced
// wholesale, never concatenated or merged element-wise, matching the base
// theme's structural expectations.
//
// Merge is pure: base and the overrides are never mutated, and the result
// shares no mutable structure with any input.
func Merge(base Tree, overrides ...Tree) Tree {
	out := Clone(base)
	if out == nil {
		out = Tree{}
	}
	for _, o := range overrides {
		mergeInto(out, o)
	}
	return out
}

// Clone returns a deep copy of t. Clone(nil) returns nil.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

// mergeInto folds src into dst. dst must already be a private copy; nested
// trees inside it are mutated in place.
func mergeInto(dst, src Tree) {
	for k, v := range src {
		if sv, ok := asTree(v); ok {
			if dv, ok := asTree(dst[k]); ok {
				mergeInto(dv, sv)
				continue
			}
			dst[k] = Clone(sv)
			continue
		}
		dst[k] = cloneValue(v)
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Tree:
		return Clone(val)
	case map[string]any:
		return Clone(Tree(val))
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
