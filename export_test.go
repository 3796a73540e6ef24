package inkwell

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesDescriptorAndTheme(t *testing.T) {
	site := newTestSite(t)
	out := filepath.Join(t.TempDir(), "dist")

	require.NoError(t, site.Export(context.Background(), out))

	raw, err := os.ReadFile(filepath.Join(out, "site.json"))
	require.NoError(t, err)
	var desc Descriptor
	require.NoError(t, json.Unmarshal(raw, &desc))
	assert.Equal(t, "Inkwell", desc.Site.Title)
	assert.Len(t, desc.Articles, 2)
	assert.NotEmpty(t, desc.BuildID)

	raw, err = os.ReadFile(filepath.Join(out, "theme.json"))
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	colors, ok := tree["colors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#1e90ff", colors["primary"])
}

func TestExportOverwritesPreviousRun(t *testing.T) {
	site := newTestSite(t)
	out := filepath.Join(t.TempDir(), "dist")

	require.NoError(t, site.Export(context.Background(), out))
	first, err := os.ReadFile(filepath.Join(out, "site.json"))
	require.NoError(t, err)

	require.NoError(t, site.Export(context.Background(), out))
	second, err := os.ReadFile(filepath.Join(out, "site.json"))
	require.NoError(t, err)

	// Build IDs differ run to run, so the file must have been replaced.
	assert.NotEqual(t, string(first), string(second))
}

func TestExportFailsWithoutContentDir(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.RemoveAll(cfg.Content.Dir))
	site, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { site.Close() })

	err = site.Export(context.Background(), filepath.Join(t.TempDir(), "dist"))
	require.Error(t, err)
}
