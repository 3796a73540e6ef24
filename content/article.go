// Package content implements the content-file surface: front-matter'd
// markdown articles discovered on disk, indexed in SQLite, and served
// through a TTL cache. Article bodies stay opaque markdown; rendering them
// belongs to whatever consumes the descriptor, not to this kit.
package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = errors.New("content: article not found")

// Article is one content file. The slug is carried from the file name (or
// the bundle directory for <slug>/index.md), never generated from the
// title. Body holds the raw markdown after the front matter block.
type Article struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags,omitempty"`
	Body        string    `json:"body"`
	Draft       bool      `json:"draft,omitempty"`
	Path        string    `json:"-"`
	Fingerprint string    `json:"-"`
}

// frontMatter is the leading YAML block of a content file.
type frontMatter struct {
	Title       string  `yaml:"title"`
	Date        string  `yaml:"date"`
	Description string  `yaml:"description"`
	Tags        tagList `yaml:"tags"`
	Draft       bool    `yaml:"draft"`
}

// tagList accepts both front matter forms: a YAML sequence and a
// comma-separated scalar.
type tagList []string

func (l *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*l = strings.Split(raw, ",")
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*l = raw
		return nil
	}
	return fmt.Errorf("tags must be a list or a comma-separated string")
}

// dateLayouts are the accepted front matter date forms, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Parse reads a single content file from r. The slug and path identify the
// file; the caller derives them from its location on disk. Title and date
// are required, everything else is optional.
func Parse(slug, path string, r io.Reader) (Article, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Article{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	return parseBytes(slug, path, raw)
}

func parseBytes(slug, path string, raw []byte) (Article, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Article{}, fmt.Errorf("content: %s: parse front matter: %w", path, err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Article{}, fmt.Errorf("content: %s: front matter is missing title", path)
	}
	if strings.TrimSpace(fm.Date) == "" {
		return Article{}, fmt.Errorf("content: %s: front matter is missing date", path)
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return Article{}, fmt.Errorf("content: %s: %w", path, err)
	}

	sum := sha256.Sum256(raw)
	return Article{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Date:        date,
		Tags:        NormalizeTags(fm.Tags),
		Body:        string(body),
		Draft:       fm.Draft,
		Path:        path,
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// NormalizeTags trims and lowercases tags, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
