package theme

import "sort"

// DefaultMode is the color mode represented by the root color tokens
// themselves. Named variants under colors.modes overlay it.
const DefaultMode = "light"

// Theme is a resolved token tree with mode-aware accessors. The zero value
// is an empty theme.
type Theme struct {
	tree Tree
}

// Resolve merges the overrides onto base and wraps the result. The inputs
// follow Merge's contract and are never mutated.
func Resolve(base Tree, overrides ...Tree) Theme {
	return Theme{tree: Merge(base, overrides...)}
}

// FromTree wraps an existing tree, taking a private copy.
func FromTree(t Tree) Theme {
	return Theme{tree: Clone(t)}
}

// Tree returns a deep copy of the resolved token tree.
func (t Theme) Tree() Tree {
	return Clone(t.tree)
}

// Get returns the token value at path.
func (t Theme) Get(path ...string) (any, bool) {
	return t.tree.Get(path...)
}

// Color returns the string color token at path under "colors", resolving
// against the default mode. Missing tokens yield "".
func (t Theme) Color(path ...string) string {
	return t.tree.String(append([]string{"colors"}, path...)...)
}

// Modes lists the available color modes: the default mode followed by the
// names under colors.modes in sorted order.
func (t Theme) Modes() []string {
	modes := []string{DefaultMode}
	sub := t.tree.Sub("colors", "modes")
	names := make([]string, 0, len(sub))
	for name := range sub {
		if name != DefaultMode {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append(modes, names...)
}

// ModeColors resolves the color tokens for the named mode. The default
// mode returns the root color tokens; any other mode deep-merges its
// overlay onto them, so tokens the overlay leaves out keep their base
// values. The second return is false for modes the theme does not define.
func (t Theme) ModeColors(mode string) (Tree, bool) {
	base := rootColors(t.tree)
	if mode == DefaultMode {
		return base, true
	}
	overlay := t.tree.Sub("colors", "modes", mode)
	if overlay == nil {
		return nil, false
	}
	return Merge(base, overlay), true
}

// rootColors returns a copy of the colors tokens with the modes subtree
// stripped out.
func rootColors(t Tree) Tree {
	colors := Clone(t.Sub("colors"))
	if colors == nil {
		return Tree{}
	}
	delete(colors, "modes")
	return colors
}
