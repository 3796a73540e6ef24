package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeOverrideWins(t *testing.T) {
	base := Tree{"colors": Tree{"primary": "blue", "secondary": "teal"}}
	override := Tree{"colors": Tree{"primary": "red"}}

	got := Merge(base, override)

	want := Tree{"colors": Tree{"primary": "red", "secondary": "teal"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsBaseOnlyLeaves(t *testing.T) {
	base := Tree{
		"colors": Tree{"text": "black", "background": "white"},
		"fonts":  Tree{"body": "Georgia"},
	}
	override := Tree{"colors": Tree{"background": "ivory"}}

	got := Merge(base, override)

	if v, _ := got.Get("colors", "text"); v != "black" {
		t.Errorf("colors.text = %v, want black", v)
	}
	if v, _ := got.Get("fonts", "body"); v != "Georgia" {
		t.Errorf("fonts.body = %v, want Georgia", v)
	}
	if v, _ := got.Get("colors", "background"); v != "ivory" {
		t.Errorf("colors.background = %v, want ivory", v)
	}
}

func TestMergeNestedScenario(t *testing.T) {
	base := Tree{
		"colors": Tree{
			"primary": "blue",
			"modes": Tree{
				"dark": Tree{"primary": "blue", "background": "black"},
			},
		},
	}
	override := Tree{
		"colors": Tree{
			"primary": "red",
			"modes": Tree{
				"dark": Tree{"secondary": "green"},
			},
		},
	}

	got := Merge(base, override)

	want := Tree{
		"colors": Tree{
			"primary": "red",
			"modes": Tree{
				"dark": Tree{
					"primary":    "blue",
					"secondary":  "green",
					"background": "black",
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeLastOverrideWins(t *testing.T) {
	base := Tree{"colors": Tree{"primary": "blue"}}
	first := Tree{"colors": Tree{"primary": "red", "accent": "coral"}}
	second := Tree{"colors": Tree{"primary": "green"}}

	got := Merge(base, first, second)

	if v, _ := got.Get("colors", "primary"); v != "green" {
		t.Errorf("colors.primary = %v, want green", v)
	}
	if v, _ := got.Get("colors", "accent"); v != "coral" {
		t.Errorf("colors.accent = %v, want coral", v)
	}
}

func TestMergeEmptyOverrideIsIdentity(t *testing.T) {
	base := Tree{
		"colors":    Tree{"primary": "blue", "modes": Tree{"dark": Tree{"text": "white"}}},
		"fontSizes": []any{12, 14, 16},
	}

	got := Merge(base, Tree{})

	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("merge with empty override changed the tree (-want +got):\n%s", diff)
	}
}

func TestMergeReplacesSequencesWholesale(t *testing.T) {
	base := Tree{"fontSizes": []any{12, 14, 16, 18}, "space": []any{0, 4, 8}}
	override := Tree{"fontSizes": []any{10, 20}}

	got := Merge(base, override)

	if diff := cmp.Diff([]any{10, 20}, got["fontSizes"]); diff != "" {
		t.Errorf("fontSizes not replaced wholesale (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{0, 4, 8}, got["space"]); diff != "" {
		t.Errorf("space changed (-want +got):\n%s", diff)
	}
}

func TestMergeScalarReplacesSubtree(t *testing.T) {
	base := Tree{"styles": Tree{"a": Tree{"color": "primary"}}}
	override := Tree{"styles": Tree{"a": "unset"}}

	got := Merge(base, override)

	if v, _ := got.Get("styles", "a"); v != "unset" {
		t.Errorf("styles.a = %v, want unset", v)
	}
}

func TestMergeSubtreeReplacesScalar(t *testing.T) {
	base := Tree{"shadows": "none"}
	override := Tree{"shadows": Tree{"card": "0 1px 2px"}}

	got := Merge(base, override)

	if v, _ := got.Get("shadows", "card"); v != "0 1px 2px" {
		t.Errorf("shadows.card = %v, want 0 1px 2px", v)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Tree{
		"colors":    Tree{"primary": "blue", "modes": Tree{"dark": Tree{"background": "black"}}},
		"fontSizes": []any{12, 14},
	}
	override := Tree{
		"colors":    Tree{"primary": "red", "modes": Tree{"dark": Tree{"secondary": "green"}}},
		"fontSizes": []any{16},
	}
	baseBefore := Clone(base)
	overrideBefore := Clone(override)

	Merge(base, override)

	if diff := cmp.Diff(baseBefore, base); diff != "" {
		t.Errorf("base mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(overrideBefore, override); diff != "" {
		t.Errorf("override mutated (-before +after):\n%s", diff)
	}
}

func TestMergeResultSharesNoStructure(t *testing.T) {
	base := Tree{"colors": Tree{"primary": "blue"}, "space": []any{0, 4}}
	override := Tree{"colors": Tree{"modes": Tree{"dark": Tree{"text": "white"}}}}

	got := Merge(base, override)

	// Mutate every level of the result; the inputs must not observe it.
	got["space"].([]any)[0] = 99
	got.Sub("colors")["primary"] = "mutated"
	got.Sub("colors", "modes", "dark")["text"] = "mutated"

	if v, _ := base.Get("space"); v.([]any)[0] != 0 {
		t.Error("base space slice shared with result")
	}
	if v, _ := base.Get("colors", "primary"); v != "blue" {
		t.Error("base colors shared with result")
	}
	if v, _ := override.Get("colors", "modes", "dark", "text"); v != "white" {
		t.Error("override subtree shared with result")
	}
}

func TestMergeNilBase(t *testing.T) {
	got := Merge(nil, Tree{"colors": Tree{"primary": "red"}})
	if v, _ := got.Get("colors", "primary"); v != "red" {
		t.Errorf("colors.primary = %v, want red", v)
	}
}

func TestCloneDeepCopies(t *testing.T) {
	orig := Tree{"colors": Tree{"primary": "blue"}, "space": []any{0, 4}}
	cp := Clone(orig)

	cp.Sub("colors")["primary"] = "red"
	cp["space"].([]any)[1] = 8

	if v, _ := orig.Get("colors", "primary"); v != "blue" {
		t.Error("clone shares nested map with original")
	}
	if orig["space"].([]any)[1] != 4 {
		t.Error("clone shares slice with original")
	}
}
