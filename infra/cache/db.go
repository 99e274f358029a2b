package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database holding fetched statuses and thread contexts.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite cache database and runs migrations.
// Use ":memory:" for a throwaway store.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS statuses (
			id TEXT PRIMARY KEY,
			account_id TEXT,
			author TEXT,
			username TEXT,
			content TEXT,
			created_unix INTEGER,
			edited_unix_nano INTEGER,
			url TEXT,
			in_reply_to_id TEXT,
			replies_count INTEGER DEFAULT 0,
			likes_count INTEGER DEFAULT 0,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_statuses_parent ON statuses(in_reply_to_id)`,

		`CREATE TABLE IF NOT EXISTS contexts (
			status_id TEXT PRIMARY KEY,
			ancestor_ids TEXT NOT NULL DEFAULT '[]',
			descendant_ids TEXT NOT NULL DEFAULT '[]',
			fetched_at INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
