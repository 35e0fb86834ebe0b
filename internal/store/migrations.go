package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// performs lightweight post-creation migrations (adding new columns when needed).
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	// Ensure new columns exist on upgrades
	if err := ensurePostedLinkColumns(db); err != nil {
		return err
	}
	return nil
}

// ensurePostedLinkColumns checks for optional columns and adds them when missing.
// Ledgers created before v0.2.0 carried only the link column.
func ensurePostedLinkColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(posted_links)")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !cols["bsky_cid"] {
		if _, err := db.Exec("ALTER TABLE posted_links ADD COLUMN bsky_cid TEXT"); err != nil {
			return err
		}
	}
	if !cols["bsky_uri"] {
		if _, err := db.Exec("ALTER TABLE posted_links ADD COLUMN bsky_uri TEXT"); err != nil {
			return err
		}
	}
	return nil
}
