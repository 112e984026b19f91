package storage

import (
	"database/sql"
	"fmt"
)

// schemaVersion is bumped whenever the persisted layout changes.
const schemaVersion = 1

// LatestSchemaVersion returns the schema version this build writes.
func LatestSchemaVersion() int {
	return schemaVersion
}

// Slot keys for the single-document store: the primary document blob
// and one rolling backup holding the previously committed blob.
const (
	SlotPrimary = "primary"
	SlotBackup  = "backup"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS document_slot (
		slot     TEXT PRIMARY KEY,
		payload  BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Record the schema version on first init; future layout changes
	// migrate based on this row.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}

	return nil
}
