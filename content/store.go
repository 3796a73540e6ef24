package content

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed article index. Dates are stored as UTC
// RFC 3339 strings so lexicographic order matches chronological order;
// tags use a comma-wrapped form (",go,web,") so a single instr() matches
// whole tags.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the index at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of failing with SQLITE_BUSY, synchronous=NORMAL is safe
	// under WAL and avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT ',,',
    body TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0,
    path TEXT NOT NULL DEFAULT '',
    fingerprint TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

const articleColumns = `slug, title, description, date, tags, body, draft, path, fingerprint`

func scanArticle(scan func(...any) error) (Article, error) {
	var a Article
	var date, tags string
	var draft int
	if err := scan(&a.Slug, &a.Title, &a.Description, &date, &tags, &a.Body, &draft, &a.Path, &a.Fingerprint); err != nil {
		return Article{}, err
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return Article{}, fmt.Errorf("content: stored date %q for %s: %w", date, a.Slug, err)
	}
	a.Date = t
	a.Tags = splitTags(tags)
	a.Draft = draft == 1
	return a, nil
}

// Upsert inserts or replaces an article by slug.
func (s *Store) Upsert(a Article) error {
	draft := 0
	if a.Draft {
		draft = 1
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO articles (`+articleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Slug, a.Title, a.Description, a.Date.UTC().Format(time.RFC3339),
		joinTags(a.Tags), a.Body, draft, a.Path, a.Fingerprint,
	)
	return err
}

// Get returns a single article by slug, or ErrNotFound.
func (s *Store) Get(slug string) (Article, error) {
	row := s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)
	a, err := scanArticle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	return a, err
}

// List returns articles ordered by date descending (ties by slug). A
// non-empty tag filters to articles carrying it, case-insensitively.
func (s *Store) List(tag string) ([]Article, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + articleColumns + ` FROM articles ORDER BY date DESC, slug ASC`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(
			`SELECT `+articleColumns+` FROM articles WHERE instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`,
			normalized,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Tags returns the sorted, deduplicated tags across all indexed articles.
func (s *Store) Tags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM articles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range splitTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// Fingerprints returns the slug to fingerprint mapping of the index.
func (s *Store) Fingerprints() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT slug, fingerprint FROM articles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var slug, fp string
		if err := rows.Scan(&slug, &fp); err != nil {
			return nil, err
		}
		out[slug] = fp
	}
	return out, rows.Err()
}

// Delete removes an article by slug. Deleting an absent slug is not an
// error.
func (s *Store) Delete(slug string) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE slug = ?`, slug)
	return err
}

// SyncStats summarizes one Sync pass.
type SyncStats struct {
	Added     int
	Updated   int
	Unchanged int
	Removed   int
}

// Sync reconciles the index with a scan result: new and changed articles
// are upserted, slugs no longer on disk are removed, and articles whose
// fingerprint is unchanged skip the rewrite entirely.
func (s *Store) Sync(articles []Article) (SyncStats, error) {
	existing, err := s.Fingerprints()
	if err != nil {
		return SyncStats{}, err
	}

	var stats SyncStats
	keep := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		keep[a.Slug] = struct{}{}
		fp, ok := existing[a.Slug]
		switch {
		case !ok:
			stats.Added++
		case fp == a.Fingerprint:
			stats.Unchanged++
			continue
		default:
			stats.Updated++
		}
		if err := s.Upsert(a); err != nil {
			return stats, fmt.Errorf("content: upsert %s: %w", a.Slug, err)
		}
	}
	for slug := range existing {
		if _, ok := keep[slug]; ok {
			continue
		}
		if err := s.Delete(slug); err != nil {
			return stats, fmt.Errorf("content: delete %s: %w", slug, err)
		}
		stats.Removed++
	}
	return stats, nil
}

// joinTags encodes tags in the comma-wrapped form the instr() filter
// expects.
func joinTags(tags []string) string {
	return "," + strings.Join(tags, ",") + ","
}

// splitTags decodes a comma-wrapped tag string (e.g. ",go,web,").
func splitTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
