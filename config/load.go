package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML document. Durations are strings here so the
// file can say "5m"; the merge step parses them. Pointer booleans separate
// "unset" from "false".
type fileConfig struct {
	SiteMetadata SiteMetadata `yaml:"siteMetadata"`
	Plugins      []PluginSpec `yaml:"plugins"`
	Content      fileContent  `yaml:"content"`
	Theme        fileTheme    `yaml:"theme"`
	Server       fileServer   `yaml:"server"`
}

type fileContent struct {
	Dir           string `yaml:"dir"`
	IndexPath     string `yaml:"indexPath"`
	CacheTTL      string `yaml:"cacheTTL"`
	IncludeDrafts *bool  `yaml:"includeDrafts"`
}

type fileTheme struct {
	Preset string `yaml:"preset"`
	Path   string `yaml:"path"`
}

type fileServer struct {
	Addr        string `yaml:"addr"`
	ReloadToken string `yaml:"reloadToken"`
}

// Load assembles the configuration with precedence defaults < file <
// environment. An empty path skips the file layer; a path that cannot be
// read is an error. Load performs no semantic validation, call Validate on
// the result for that.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergeFile(cfg, fc); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		cfg.File = path
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

// loadFile decodes a YAML config file strictly: unknown keys outside plugin
// options are errors, as is trailing content after the document.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if err == io.EOF {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config: %s contains multiple documents or trailing content", path)
	}
	return &fc, nil
}

// mergeFile overlays non-zero file values onto cfg.
func mergeFile(cfg *Config, fc *fileConfig) error {
	mergeMetadata(&cfg.Metadata, fc.SiteMetadata)

	if len(fc.Plugins) > 0 {
		cfg.Plugins = fc.Plugins
	}

	if fc.Content.Dir != "" {
		cfg.Content.Dir = fc.Content.Dir
	}
	if fc.Content.IndexPath != "" {
		cfg.Content.IndexPath = fc.Content.IndexPath
	}
	if fc.Content.CacheTTL != "" {
		ttl, err := time.ParseDuration(fc.Content.CacheTTL)
		if err != nil {
			return fmt.Errorf("content.cacheTTL %q: %w", fc.Content.CacheTTL, err)
		}
		cfg.Content.CacheTTL = ttl
	}
	if fc.Content.IncludeDrafts != nil {
		cfg.Content.IncludeDrafts = *fc.Content.IncludeDrafts
	}

	if fc.Theme.Preset != "" {
		cfg.Theme.Preset = fc.Theme.Preset
	}
	if fc.Theme.Path != "" {
		cfg.Theme.Path = fc.Theme.Path
	}

	if fc.Server.Addr != "" {
		cfg.Server.Addr = fc.Server.Addr
	}
	if fc.Server.ReloadToken != "" {
		cfg.Server.ReloadToken = fc.Server.ReloadToken
	}
	return nil
}

func mergeMetadata(dst *SiteMetadata, src SiteMetadata) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.TitleAlt != "" {
		dst.TitleAlt = src.TitleAlt
	}
	if src.Headline != "" {
		dst.Headline = src.Headline
	}
	if src.SiteURL != "" {
		dst.SiteURL = src.SiteURL
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.Image != "" {
		dst.Image = src.Image
	}
	if src.Author != "" {
		dst.Author = src.Author
	}
}

// applyEnv overlays INKWELL_* environment variables, the highest-precedence
// layer.
func applyEnv(cfg *Config) {
	cfg.Metadata.Title = ParseString("INKWELL_SITE_TITLE", cfg.Metadata.Title)
	cfg.Metadata.SiteURL = ParseString("INKWELL_SITE_URL", cfg.Metadata.SiteURL)
	cfg.Metadata.Author = ParseString("INKWELL_SITE_AUTHOR", cfg.Metadata.Author)
	cfg.Content.Dir = ParseString("INKWELL_CONTENT_DIR", cfg.Content.Dir)
	cfg.Content.IndexPath = ParseString("INKWELL_CONTENT_INDEX", cfg.Content.IndexPath)
	cfg.Content.CacheTTL = ParseDuration("INKWELL_CONTENT_CACHE_TTL", cfg.Content.CacheTTL)
	cfg.Content.IncludeDrafts = ParseBool("INKWELL_CONTENT_DRAFTS", cfg.Content.IncludeDrafts)
	cfg.Theme.Preset = ParseString("INKWELL_THEME_PRESET", cfg.Theme.Preset)
	cfg.Theme.Path = ParseString("INKWELL_THEME_PATH", cfg.Theme.Path)
	cfg.Server.Addr = ParseString("INKWELL_ADDR", cfg.Server.Addr)
	cfg.Server.ReloadToken = ParseString("INKWELL_RELOAD_TOKEN", cfg.Server.ReloadToken)
}

// normalize settles representational choices after all layers are merged.
// The site URL drops its trailing slash so descriptor consumers can join
// paths without double separators.
func normalize(cfg *Config) {
	if cfg.Metadata.SiteURL != "" {
		trimmed := strings.TrimRight(cfg.Metadata.SiteURL, "/")
		if trimmed != "" {
			cfg.Metadata.SiteURL = trimmed
		}
	}
	cfg.Metadata.Language = strings.TrimSpace(cfg.Metadata.Language)
}
