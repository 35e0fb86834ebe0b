// Package store persists the ledger of feed entries already mirrored to
// Bluesky. The ledger is what makes repeated cron runs idempotent.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open ensures the parent directory exists, opens the SQLite ledger at path,
// and creates the schema if it does not exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := ApplyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Entry is one mirrored feed item.
type Entry struct {
	ID       int64
	Link     string
	FeedURL  string
	Cid      string
	URI      string
	PostedAt string
}

// Ledger provides read/write access to the posted-links table.
type Ledger struct {
	db *sql.DB
}

// NewLedger creates a new Ledger using db.
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Contains reports whether link has already been mirrored.
func (l *Ledger) Contains(link string) (bool, error) {
	var one int
	err := l.db.QueryRow("SELECT 1 FROM posted_links WHERE link = ?", link).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query posted link: %w", err)
	}
	return true, nil
}

// Record inserts a mirrored entry. Inserting the same link twice is an error;
// callers check Contains first.
func (l *Ledger) Record(e Entry) error {
	_, err := l.db.Exec(`INSERT INTO posted_links (link, feed_url, bsky_cid, bsky_uri, posted_at)
			VALUES (?, ?, ?, ?, datetime('now'))`, e.Link, e.FeedURL, e.Cid, e.URI)
	if err != nil {
		return fmt.Errorf("insert posted link: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep entries and returns how many rows
// were removed.
func (l *Ledger) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := l.db.Exec(`DELETE FROM posted_links WHERE id NOT IN
			(SELECT id FROM posted_links ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune ledger: %w", err)
	}
	return res.RowsAffected()
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	rows, err := l.db.Query(`SELECT id, link, COALESCE(feed_url, ''), COALESCE(bsky_cid, ''),
			COALESCE(bsky_uri, ''), posted_at
			FROM posted_links ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list posted links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Link, &e.FeedURL, &e.Cid, &e.URI, &e.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of ledger entries.
func (l *Ledger) Count() (int64, error) {
	var n int64
	if err := l.db.QueryRow("SELECT COUNT(*) FROM posted_links").Scan(&n); err != nil {
		return 0, fmt.Errorf("count posted links: %w", err)
	}
	return n, nil
}
