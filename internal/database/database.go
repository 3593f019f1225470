package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS incident_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_token TEXT NOT NULL,
		created_by TEXT,
		requester_email TEXT,
		incident_address TEXT NOT NULL,
		incident_datetime TEXT NOT NULL,
		county TEXT NOT NULL,
		county_email TEXT NOT NULL,
		notified INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS inbound_emails (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT,
		subject TEXT,
		body TEXT,
		parsed_address TEXT,
		parsed_datetime TEXT,
		parsed_county TEXT,
		has_attachments INTEGER NOT NULL DEFAULT 0,
		attachment_count INTEGER NOT NULL DEFAULT 0,
		forwarded_to TEXT,
		forward_status TEXT,
		forwarded_at DATETIME,
		forward_sg_message_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
