package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// presetFS ships the base themes a site can build on. A preset is a
// complete token schema; site overrides stay sparse and inherit the rest
// through Merge.
//
//go:embed presets/*.yaml
var presetFS embed.FS

// Preset loads the named embedded base theme.
func Preset(name string) (Tree, error) {
	f, err := presetFS.Open("presets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("theme: unknown preset %q", name)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("theme: preset %q: %w", name, err)
	}
	return t, nil
}

// Presets lists the embedded base theme names in sorted order.
func Presets() []string {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Default returns a copy of the default base theme.
func Default() Tree {
	t, err := Preset("default")
	if err != nil {
		// The default preset is embedded; failing to load it is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return t
}
