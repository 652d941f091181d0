package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Cascade deletes on the image tables depend on this
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Integer autoincrement primary keys are load-bearing on the image
	// tables: thumbnail re-selection picks the lowest remaining id.
	schema := `
	CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		description TEXT NOT NULL,
		photo TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS achievements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS achievement_images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		achievement_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		FOREIGN KEY (achievement_id) REFERENCES achievements(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS publications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS publication_images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		publication_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		FOREIGN KEY (publication_id) REFERENCES publications(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		date_posted TEXT NOT NULL,
		image TEXT
	);

	CREATE TABLE IF NOT EXISTS news_images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		news_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		FOREIGN KEY (news_id) REFERENCES news(id) ON DELETE CASCADE
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
