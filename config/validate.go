package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks the assembled configuration and reports every problem it
// finds as a single joined error, so operators fix a config in one round
// instead of one failure at a time. A nil return means the configuration is
// usable.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Metadata.Title) == "" {
		errs = append(errs, errors.New("siteMetadata.title is required"))
	}
	switch siteURL := strings.TrimSpace(c.Metadata.SiteURL); siteURL {
	case "":
		errs = append(errs, errors.New("siteMetadata.siteUrl is required"))
	default:
		u, err := url.Parse(siteURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("siteMetadata.siteUrl %q must be an absolute http(s) URL", siteURL))
		}
	}
	if lang := c.Metadata.Language; lang != "" {
		if _, err := language.Parse(lang); err != nil {
			errs = append(errs, fmt.Errorf("siteMetadata.language %q is not a valid language tag: %w", lang, err))
		}
	}

	for i, p := range c.Plugins {
		errs = append(errs, validatePlugin(i, p)...)
	}

	if c.Content.Dir == "" {
		errs = append(errs, errors.New("content.dir must not be empty"))
	}
	if c.Content.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("content.cacheTTL must not be negative (got %s)", c.Content.CacheTTL))
	}
	if c.Theme.Preset == "" {
		errs = append(errs, errors.New("theme.preset must not be empty"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}

	return errors.Join(errs...)
}

func validatePlugin(i int, p PluginSpec) []error {
	var errs []error
	for j, n := range p.Options.Navigation {
		if strings.TrimSpace(n.Slug) == "" {
			errs = append(errs, fmt.Errorf("plugins[%d] %s: navigation entry %d (%q) has an empty slug", i, p.Resolve, j, n.Title))
		}
	}
	for j, l := range p.Options.Links {
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, fmt.Errorf("plugins[%d] %s: link %d has an empty name", i, p.Resolve, j))
		}
		if u, err := url.Parse(strings.TrimSpace(l.URL)); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("plugins[%d] %s: link %q has an invalid url %q", i, p.Resolve, l.Name, l.URL))
		}
	}
	if p.Resolve == PluginDates && strings.TrimSpace(p.Options.DateFormat) == "" {
		errs = append(errs, fmt.Errorf("plugins[%d] %s: options.dateFormat is required", i, p.Resolve))
	}
	return errs
}
