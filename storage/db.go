package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the invocation history store.
type DB struct {
	conn *sql.DB
}

// Open opens grist.db under configDir and creates the schema if needed
func Open(configDir string) (*DB, error) {
	dbPath := filepath.Join(configDir, "grist.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// The recorder is the only writer; readers are the dashboard handlers
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	conn.SetMaxOpenConns(4)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the database schema
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,

		-- What fired
		binding TEXT NOT NULL,
		action TEXT NOT NULL,
		trigger_keys TEXT NOT NULL,

		-- Time spent inside the hook callback
		duration_us INTEGER NOT NULL,
		slow BOOLEAN NOT NULL DEFAULT 0,

		-- Status
		success BOOLEAN NOT NULL,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_timestamp ON invocations(timestamp);
	CREATE INDEX IF NOT EXISTS idx_invocations_binding ON invocations(binding);
	`

	_, err := db.conn.Exec(schema)
	return err
}
