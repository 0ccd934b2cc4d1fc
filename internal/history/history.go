// Package history keeps a local log of dispatched URLs in SQLite.
//
// Recording is best-effort: the orchestrator treats a write failure as a
// warning, so a broken database never costs the user their dispatch.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver.
)

// Entry is one dispatched URL.
type Entry struct {
	ID        int64
	URL       string
	Kind      string // "article" or "video"
	VideoID   string // empty for articles
	Provider  string
	Chars     int // size of the assembled message
	Clipboard bool
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS dispatches (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	url        TEXT    NOT NULL,
	kind       TEXT    NOT NULL,
	video_id   TEXT    NOT NULL DEFAULT '',
	provider   TEXT    NOT NULL,
	chars      INTEGER NOT NULL,
	clipboard  INTEGER NOT NULL,
	created_at TEXT    NOT NULL
);
`

// Store wraps the SQLite connection holding the dispatch log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path and applies
// the schema. The connection uses WAL journal mode, a 5-second busy timeout,
// and a single connection since SQLite allows one writer.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory %q: %w", dir, err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one entry to the log. The entry's CreatedAt is used when
// set, otherwise now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatches (url, kind, video_id, provider, chars, clipboard, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.URL, e.Kind, e.VideoID, e.Provider, e.Chars, boolToInt(e.Clipboard),
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording dispatch: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, kind, video_id, provider, chars, clipboard, created_at
		FROM dispatches
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying dispatches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var clipboard int
		var createdAt string
		if err := rows.Scan(&e.ID, &e.URL, &e.Kind, &e.VideoID, &e.Provider,
			&e.Chars, &clipboard, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning dispatch row: %w", err)
		}
		e.Clipboard = clipboard != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dispatch rows: %w", err)
	}
	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
