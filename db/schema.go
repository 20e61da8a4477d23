// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The voter roll itself is never stored; these tables only record who
// loaded and exported what. Types stay within what both SQLite and
// PostgreSQL accept.
const schema = `
-- Feed loads
CREATE TABLE IF NOT EXISTS roll_load (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('ok', 'failed')),
    record_count INTEGER NOT NULL DEFAULT 0,
    size_bytes BIGINT NOT NULL DEFAULT 0,
    error TEXT,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_roll_load_finished_at ON roll_load(finished_at);

-- Detail CSV downloads
CREATE TABLE IF NOT EXISTS export_log (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK (kind IN ('age', 'history')),
    filters TEXT NOT NULL,
    elections TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_export_log_created_at ON export_log(created_at);
`
