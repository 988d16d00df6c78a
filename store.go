package garden

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// Store wraps a SQLite database holding the page index between ingestion and
// rendering, plus a log of builds.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while a re-ingest writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		db.Close()
		return nil, err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
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
CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    file_path TEXT NOT NULL,
    title TEXT NOT NULL,
    source BLOB,
    kind INTEGER NOT NULL DEFAULT 0,
    virtual INTEGER NOT NULL DEFAULT 0,
    created TEXT NOT NULL DEFAULT '',
    modified TEXT NOT NULL DEFAULT '',
    published TEXT NOT NULL DEFAULT '',
    links TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    pages INTEGER NOT NULL,
    failed INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// Replace swaps the whole page index for records in one transaction.
func (s *Store) Replace(ctx context.Context, records []content.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (slug, file_path, title, source, kind, virtual, created, modified, published, links) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		virtual := 0
		if r.Virtual {
			virtual = 1
		}
		if _, err := stmt.ExecContext(ctx, string(r.Slug), r.FilePath, r.Title, r.Source, int(r.Kind), virtual,
			formatTime(r.Dates.Created), formatTime(r.Dates.Modified), formatTime(r.Dates.Published),
			joinLinks(r.Links)); err != nil {
			return fmt.Errorf("insert %s: %w", r.Slug, err)
		}
	}
	return tx.Commit()
}

const pageColumns = `slug, file_path, title, source, kind, virtual, created, modified, published, links`

// ListPages returns every stored record ordered by slug.
func (s *Store) ListPages(ctx context.Context) ([]content.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []content.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetPage returns the record stored for slug, or ErrNotFound.
func (s *Store) GetPage(ctx context.Context, key slug.Full) (content.Record, error) {
	return scanRecord(s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, string(key)))
}

// Count returns the number of stored pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	return n, err
}

// BuildRecord is one row of the build log.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Failed     int
	Error      string
}

// RecordBuild appends a build to the log.
func (s *Store) RecordBuild(ctx context.Context, b BuildRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO builds (id, started_at, finished_at, pages, failed, error) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, formatTime(b.StartedAt), formatTime(b.FinishedAt), b.Pages, b.Failed, b.Error)
	return err
}

// LastBuild returns the most recently started build, or ErrNotFound.
func (s *Store) LastBuild(ctx context.Context) (BuildRecord, error) {
	var b BuildRecord
	var started, finished string
	err := s.db.QueryRowContext(ctx, `SELECT id, started_at, finished_at, pages, failed, error FROM builds ORDER BY started_at DESC LIMIT 1`).
		Scan(&b.ID, &started, &finished, &b.Pages, &b.Failed, &b.Error)
	if err != nil {
		return BuildRecord{}, err
	}
	b.StartedAt = parseTime(started)
	b.FinishedAt = parseTime(finished)
	return b, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (content.Record, error) {
	var r content.Record
	var s, created, modified, published, links string
	var kind, virtual int
	if err := row.Scan(&s, &r.FilePath, &r.Title, &r.Source, &kind, &virtual, &created, &modified, &published, &links); err != nil {
		return content.Record{}, err
	}
	r.Slug = slug.Full(s)
	r.Kind = content.Kind(kind)
	r.Virtual = virtual == 1
	r.Dates = content.Dates{
		Created:   parseTime(created),
		Modified:  parseTime(modified),
		Published: parseTime(published),
	}
	r.Links = splitLinks(links)
	return r, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// joinLinks stores link slugs newline-delimited; slugs never contain newlines.
func joinLinks(links []slug.Full) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

func splitLinks(v string) []slug.Full {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, "\n")
	out := make([]slug.Full, len(parts))
	for i, p := range parts {
		out[i] = slug.Full(p)
	}
	return out
}
