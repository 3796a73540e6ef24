package inkwell

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shkcodes/inkwell/config"
	"github.com/shkcodes/inkwell/content"
	"github.com/shkcodes/inkwell/internal/metrics"
	"github.com/shkcodes/inkwell/theme"
)

// DefaultDateFormat is the article date presentation used when no dates
// plugin overrides it.
const DefaultDateFormat = "January 2, 2006"

// Descriptor is the assembled site: metadata, plugin contributions, the
// merged theme, and the article index. It is what the export files and
// the API serve.
type Descriptor struct {
	Site        config.SiteMetadata   `json:"site"`
	Navigation  []config.NavEntry     `json:"navigation,omitempty"`
	Links       []config.ExternalLink `json:"links,omitempty"`
	DateFormat  string                `json:"dateFormat"`
	Plugins     []config.PluginSpec   `json:"plugins,omitempty"`
	Theme       theme.Tree            `json:"theme"`
	Articles    []ArticleRef          `json:"articles"`
	Tags        []string              `json:"tags,omitempty"`
	BuildID     string                `json:"buildId"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// ArticleRef is the index entry for one article. The body stays out; the
// article endpoint serves it.
type ArticleRef struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	DateFormatted string    `json:"dateFormatted"`
	Tags          []string  `json:"tags,omitempty"`
}

// pluginEffects is what folding the plugin list produces.
type pluginEffects struct {
	navigation []config.NavEntry
	links      []config.ExternalLink
	dateFormat string
}

// applyPlugins folds the configured plugin list in order. Known plugins
// contribute their options, a later activation of the same plugin wins
// outright. Unknown plugins contribute nothing here but stay in the
// descriptor verbatim for the consumer.
func (s *Site) applyPlugins(cfg *config.Config) pluginEffects {
	effects := pluginEffects{dateFormat: DefaultDateFormat}
	for _, p := range cfg.Plugins {
		switch p.Resolve {
		case config.PluginNavigation:
			if p.Options.Navigation != nil {
				effects.navigation = p.Options.Navigation
			}
		case config.PluginLinks:
			if p.Options.Links != nil {
				effects.links = p.Options.Links
			}
		case config.PluginDates:
			if p.Options.DateFormat != "" {
				effects.dateFormat = p.Options.DateFormat
			}
		default:
			s.logger.Debug().Str("plugin", p.Resolve).Msg("unknown plugin carried verbatim")
		}
	}
	return effects
}

// Build scans the content directory, syncs the index, and assembles a
// fresh descriptor. The configuration and theme are read, never written.
func (s *Site) Build(ctx context.Context) (*Descriptor, error) {
	start := time.Now()
	desc, err := s.build(ctx)
	if err != nil {
		metrics.ObserveRebuild("error", time.Since(start))
		return nil, err
	}
	metrics.ObserveRebuild("ok", time.Since(start))
	return desc, nil
}

func (s *Site) build(ctx context.Context) (*Descriptor, error) {
	cfg := s.Config()

	resolved, err := s.resolveTheme()
	if err != nil {
		return nil, err
	}

	scanner := content.NewScanner(cfg.Content.Dir, content.WithDrafts(cfg.Content.IncludeDrafts))
	articles, err := scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("inkwell: scan content: %w", err)
	}
	stats, err := s.Store.Sync(articles)
	if err != nil {
		return nil, fmt.Errorf("inkwell: sync index: %w", err)
	}
	s.Cache.Invalidate()
	metrics.ArticlesIndexed.Set(float64(len(articles)))
	s.logger.Info().
		Int("articles", len(articles)).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("unchanged", stats.Unchanged).
		Int("removed", stats.Removed).
		Msg("content indexed")

	effects := s.applyPlugins(cfg)
	refs := make([]ArticleRef, 0, len(articles))
	tagSet := make(map[string]struct{})
	for _, a := range articles {
		refs = append(refs, articleRef(a, effects.dateFormat))
		for _, t := range a.Tags {
			tagSet[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return &Descriptor{
		Site:        cfg.Metadata,
		Navigation:  effects.navigation,
		Links:       effects.links,
		DateFormat:  effects.dateFormat,
		Plugins:     cfg.Plugins,
		Theme:       resolved.Tree(),
		Articles:    refs,
		Tags:        tags,
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func articleRef(a content.Article, dateFormat string) ArticleRef {
	return ArticleRef{
		Slug:          a.Slug,
		Title:         a.Title,
		Description:   a.Description,
		Date:          a.Date,
		DateFormatted: a.Date.Format(dateFormat),
		Tags:          a.Tags,
	}
}
