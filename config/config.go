// Package config owns the site's configuration descriptor: site metadata,
// the ordered plugin list, and the kit-side settings for content, theme,
// and server. Configuration is assembled with precedence defaults < YAML
// file < environment and validated as a whole, so a site learns about every
// problem in one pass instead of one build failure at a time.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Names of the plugins the descriptor assembly understands. Unknown names
// are carried through the descriptor untouched.
const (
	PluginNavigation = "navigation"
	PluginLinks      = "links"
	PluginDates      = "dates"
)

// SiteMetadata is the flat record of site-wide strings. It is immutable
// after load; every consumer receives it by value.
type SiteMetadata struct {
	Title       string `yaml:"title" json:"title"`
	TitleAlt    string `yaml:"titleAlt" json:"titleAlt,omitempty"`
	Headline    string `yaml:"headline" json:"headline,omitempty"`
	SiteURL     string `yaml:"siteUrl" json:"siteUrl"`
	Description string `yaml:"description" json:"description,omitempty"`
	Language    string `yaml:"language" json:"language,omitempty"`
	Image       string `yaml:"image" json:"image,omitempty"`
	Author      string `yaml:"author" json:"author,omitempty"`
}

// NavEntry is one entry of the site navigation, in declaration order.
type NavEntry struct {
	Title string `yaml:"title" json:"title"`
	Slug  string `yaml:"slug" json:"slug"`
}

// ExternalLink points at a profile or resource outside the site.
type ExternalLink struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// PluginOptions carries a plugin's parameters. Keys the kit does not model
// are preserved verbatim in Rest so data-only plugins keep their options
// across load and export.
type PluginOptions struct {
	DateFormat string         `yaml:"dateFormat,omitempty"`
	Navigation []NavEntry     `yaml:"navigation,omitempty"`
	Links      []ExternalLink `yaml:"links,omitempty"`
	Rest       map[string]any `yaml:",inline"`
}

// IsZero reports whether no option was supplied at all.
func (o PluginOptions) IsZero() bool {
	return o.DateFormat == "" && len(o.Navigation) == 0 && len(o.Links) == 0 && len(o.Rest) == 0
}

// MarshalJSON flattens Rest into the options object so exported descriptors
// look exactly like the configuration that produced them.
func (o PluginOptions) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Rest)+3)
	for k, v := range o.Rest {
		out[k] = v
	}
	if o.DateFormat != "" {
		out["dateFormat"] = o.DateFormat
	}
	if len(o.Navigation) > 0 {
		out["navigation"] = o.Navigation
	}
	if len(o.Links) > 0 {
		out["links"] = o.Links
	}
	return json.Marshal(out)
}

// PluginSpec identifies a plugin activation. In YAML a list item is either
// a bare plugin name or a {resolve, options} record; both decode into the
// same spec. List order is preserved because plugins apply in sequence.
type PluginSpec struct {
	Resolve string
	Options PluginOptions
}

// UnmarshalYAML accepts the scalar and mapping forms of a plugin entry.
func (p *PluginSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("config: plugin entry is empty")
		}
		p.Resolve = name
		return nil
	case yaml.MappingNode:
		var raw struct {
			Resolve string        `yaml:"resolve"`
			Options PluginOptions `yaml:"options"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if raw.Resolve == "" {
			return fmt.Errorf("config: plugin record is missing resolve")
		}
		p.Resolve = raw.Resolve
		p.Options = raw.Options
		return nil
	}
	return fmt.Errorf("config: plugin entry must be a name or a {resolve, options} record")
}

// MarshalJSON emits the {resolve, options} form, dropping empty options.
func (p PluginSpec) MarshalJSON() ([]byte, error) {
	out := struct {
		Resolve string         `json:"resolve"`
		Options *PluginOptions `json:"options,omitempty"`
	}{Resolve: p.Resolve}
	if !p.Options.IsZero() {
		out.Options = &p.Options
	}
	return json.Marshal(out)
}

// ContentConfig locates and tunes the article index.
type ContentConfig struct {
	Dir           string        // content directory (default "content")
	IndexPath     string        // SQLite index path (default "data/content.db")
	CacheTTL      time.Duration // article cache TTL (default 5m)
	IncludeDrafts bool          // index draft articles too
}

// ThemeConfig names the base preset and the site's override file.
type ThemeConfig struct {
	Preset string // embedded base theme (default "default")
	Path   string // sparse override file (default "theme.yaml"); may be absent
}

// ServerConfig tunes the headless descriptor API.
type ServerConfig struct {
	Addr        string // listen address (default ":8080")
	ReloadToken string // optional bearer token guarding POST /api/reload
}

// Config is the single top-level record the kit consumes. Metadata and
// Plugins form the descriptor surface; the remaining sections are kit-side
// settings with defaults. File records where the configuration was loaded
// from, empty when it came from defaults and environment alone.
type Config struct {
	Metadata SiteMetadata
	Plugins  []PluginSpec
	Content  ContentConfig
	Theme    ThemeConfig
	Server   ServerConfig

	File string
}

// Default returns a configuration with every kit-side setting at its
// default and no site metadata.
func Default() *Config {
	return &Config{
		Metadata: SiteMetadata{
			Language: "en",
		},
		Content: ContentConfig{
			Dir:       "content",
			IndexPath: "data/content.db",
			CacheTTL:  5 * time.Minute,
		},
		Theme: ThemeConfig{
			Preset: "default",
			Path:   "theme.yaml",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
