package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shkcodes/inkwell/internal/log"
	"github.com/shkcodes/inkwell/internal/metrics"
)

// Scanner discovers articles under a content directory. Markdown files are
// parsed; dotfiles, dot-directories, and anything without a markdown
// extension are ignored. Drafts are skipped unless the scanner is built
// with WithDrafts(true).
type Scanner struct {
	dir           string
	includeDrafts bool
	logger        zerolog.Logger
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithDrafts controls whether draft articles are included.
func WithDrafts(include bool) ScanOption {
	return func(s *Scanner) { s.includeDrafts = include }
}

// NewScanner creates a Scanner rooted at dir.
func NewScanner(dir string, opts ...ScanOption) *Scanner {
	s := &Scanner{
		dir:    dir,
		logger: log.WithComponent("content"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the content directory and returns its articles sorted by date
// descending, ties broken by slug ascending. Two files resolving to the
// same slug are an error, as is any file that fails to parse.
func (s *Scanner) Scan(ctx context.Context) ([]Article, error) {
	seen := make(map[string]string)
	var articles []Article

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != s.dir && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if ext := strings.ToLower(filepath.Ext(name)); ext != ".md" && ext != ".markdown" {
			return nil
		}

		slug := slugFor(s.dir, path)
		if prev, dup := seen[slug]; dup {
			return fmt.Errorf("content: duplicate slug %q (%s and %s)", slug, prev, path)
		}
		seen[slug] = path

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", path, err)
		}
		article, err := parseBytes(slug, path, raw)
		if err != nil {
			metrics.ParseFailures.Inc()
			return err
		}
		if article.Draft && !s.includeDrafts {
			s.logger.Debug().Str("slug", slug).Msg("skipping draft")
			return nil
		}
		articles = append(articles, article)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortArticles(articles)
	s.logger.Debug().Int("articles", len(articles)).Str("dir", s.dir).Msg("scan complete")
	return articles, nil
}

// slugFor derives the slug for a file: the file stem, or the directory name
// for <slug>/index.md bundles.
func slugFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if strings.EqualFold(stem, "index") {
		if dir := filepath.Dir(rel); dir != "." {
			return filepath.Base(dir)
		}
	}
	return stem
}

func sortArticles(articles []Article) {
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].Date.Equal(articles[j].Date) {
			return articles[i].Date.After(articles[j].Date)
		}
		return articles[i].Slug < articles[j].Slug
	})
}
