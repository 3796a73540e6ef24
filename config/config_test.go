package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginSpecJSONBareName(t *testing.T) {
	b, err := json.Marshal(PluginSpec{Resolve: "offline"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"resolve":"offline"}`, string(b))
}

func TestPluginSpecJSONWithOptions(t *testing.T) {
	spec := PluginSpec{
		Resolve: PluginNavigation,
		Options: PluginOptions{
			Navigation: []NavEntry{{Title: "Blog", Slug: "/blog"}},
			Rest:       map[string]any{"sticky": true},
		},
	}

	b, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"resolve": "navigation",
		"options": {
			"navigation": [{"title": "Blog", "slug": "/blog"}],
			"sticky": true
		}
	}`, string(b))
}

func TestPluginOptionsRestNeverShadowsKnownKeys(t *testing.T) {
	opts := PluginOptions{
		DateFormat: "January 2, 2006",
		Rest:       map[string]any{"dateFormat": "stale"},
	}

	b, err := json.Marshal(opts)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "January 2, 2006", out["dateFormat"])
}

func TestPluginOptionsIsZero(t *testing.T) {
	assert.True(t, PluginOptions{}.IsZero())
	assert.False(t, PluginOptions{DateFormat: "2006"}.IsZero())
	assert.False(t, PluginOptions{Rest: map[string]any{"k": 1}}.IsZero())
}
