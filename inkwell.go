// Package inkwell turns a declarative site descriptor into data a blog
// frontend can consume. It loads the site configuration, resolves the
// theme by deep-merging override layers onto a preset, indexes markdown
// content into SQLite, and assembles everything into a single exportable
// descriptor. Serving that descriptor over HTTP and exporting it to disk
// are both built in; rendering it is left to whoever consumes it.
package inkwell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/shkcodes/inkwell/config"
	"github.com/shkcodes/inkwell/content"
	"github.com/shkcodes/inkwell/internal/log"
	"github.com/shkcodes/inkwell/theme"
)

// Site is the central object. It wires together the configuration, the
// theme layers, the content index, and the cache in front of it.
//
// The configuration is swapped atomically on reload, so a Site is safe
// for concurrent use; everything derived from it flows through Build.
type Site struct {
	Store *content.Store
	Cache *content.Cache

	cfg       atomic.Pointer[config.Config]
	baseTheme theme.Tree
	logger    zerolog.Logger
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger used by the site and everything it builds.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Site) { s.logger = logger }
}

// WithBaseTheme replaces the preset named in the configuration as the
// bottom theme layer.
func WithBaseTheme(base theme.Tree) Option {
	return func(s *Site) { s.baseTheme = base }
}

// New creates a Site from a loaded configuration: resolves the theme
// layers once to surface errors early, opens the article index, and sets
// up the cache. Call Close when done.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	s := &Site{
		logger: log.WithComponent("site"),
	}
	s.cfg.Store(cfg)
	for _, opt := range opts {
		opt(s)
	}

	if s.baseTheme == nil {
		base, err := theme.Preset(cfg.Theme.Preset)
		if err != nil {
			return nil, fmt.Errorf("inkwell: theme preset: %w", err)
		}
		s.baseTheme = base
	}
	if _, err := s.resolveTheme(); err != nil {
		return nil, err
	}

	store, err := content.NewStore(cfg.Content.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("inkwell: open index: %w", err)
	}
	s.Store = store
	s.Cache = content.NewCache(store, cfg.Content.CacheTTL)

	return s, nil
}

// Config returns the current configuration.
func (s *Site) Config() *config.Config {
	return s.cfg.Load()
}

// ReloadConfig re-reads the configuration file the site was loaded from
// and swaps it in. The old configuration is kept when loading or
// validation fails. Fields that cannot take effect without a restart are
// reported in the log.
func (s *Site) ReloadConfig(ctx context.Context) error {
	old := s.Config()
	if old.File == "" {
		return nil
	}
	cfg, err := config.Load(old.File)
	if err != nil {
		return fmt.Errorf("inkwell: reload config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("inkwell: reload config: %w", err)
	}
	if old.Content.IndexPath != cfg.Content.IndexPath {
		s.logger.Warn().Str("old", old.Content.IndexPath).Str("new", cfg.Content.IndexPath).
			Msg("index path changed; restart to apply")
		cfg.Content.IndexPath = old.Content.IndexPath
	}
	if old.Server.Addr != cfg.Server.Addr {
		s.logger.Warn().Str("old", old.Server.Addr).Str("new", cfg.Server.Addr).
			Msg("listen address changed; restart to apply")
		cfg.Server.Addr = old.Server.Addr
	}
	s.cfg.Store(cfg)
	s.logger.Info().Str("path", cfg.File).Msg("configuration reloaded")
	return nil
}

// resolveTheme merges the override file named by the current
// configuration (when present) onto the base layer. It re-reads the
// override on every call so edits take effect on the next build.
func (s *Site) resolveTheme() (theme.Theme, error) {
	path := s.Config().Theme.Path
	if path == "" {
		return theme.FromTree(s.baseTheme), nil
	}
	override, err := theme.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return theme.FromTree(s.baseTheme), nil
	}
	if err != nil {
		return theme.Theme{}, fmt.Errorf("inkwell: theme overrides: %w", err)
	}
	return theme.Resolve(s.baseTheme, override), nil
}

// Close releases the site's resources.
func (s *Site) Close() error {
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}
