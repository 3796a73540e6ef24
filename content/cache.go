package content

import (
	"strings"
	"sync"
	"time"
)

// Cache is an in-memory view of the article index with TTL. Reads hit
// the store at most once per TTL window; Invalidate forces the next
// read to reload.
type Cache struct {
	mu       sync.RWMutex
	articles []Article
	tags     []string
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewCache creates a Cache backed by the given Store.
func NewCache(s *Store, ttl time.Duration) *Cache {
	return &Cache{store: s, ttl: ttl}
}

func (c *Cache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *Cache) load() error {
	if c.valid() {
		return nil
	}
	articles, err := c.store.List("")
	if err != nil {
		return err
	}
	tags, err := c.store.Tags()
	if err != nil {
		return err
	}
	c.articles = articles
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached articles and tags after ensuring the cache
// is fresh. It tries a read lock first; only takes a write lock if a
// reload is needed.
func (c *Cache) ensureLoaded() ([]Article, []string, error) {
	c.mu.RLock()
	if c.valid() {
		articles, tags := c.articles, c.tags
		c.mu.RUnlock()
		return articles, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.articles, c.tags, nil
}

// List returns indexed articles, optionally filtered by tag.
func (c *Cache) List(tag string) ([]Article, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return articles, nil
	}
	normalized := normalizeTag(tag)
	var filtered []Article
	for _, a := range articles {
		for _, t := range a.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered, nil
}

// Tags returns all unique tags across indexed articles.
func (c *Cache) Tags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// Get returns a single article by slug from the cache.
func (c *Cache) Get(slug string) (Article, error) {
	articles, _, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
