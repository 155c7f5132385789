package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Timestamps on inventory rows are written by the application (UTC, nanosecond
// precision) instead of CURRENT_TIMESTAMP, so that ordering by last_updated is
// exact even for mutations within the same second.
const schema = `
CREATE TABLE IF NOT EXISTS inventory (
    id           INTEGER PRIMARY KEY,
    barcode      TEXT NOT NULL UNIQUE,
    product_name TEXT NOT NULL,
    brand        TEXT,
    category     TEXT,
    image_url    TEXT,
    unit         TEXT NOT NULL DEFAULT 'item',
    quantity     INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    expiry_date  TEXT,
    date_added   TEXT NOT NULL,
    last_updated TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_last_updated
    ON inventory(last_updated DESC);

CREATE TABLE IF NOT EXISTS activity (
    id          INTEGER PRIMARY KEY,
    barcode     TEXT NOT NULL REFERENCES inventory(barcode),
    action      TEXT NOT NULL CHECK (action IN ('add', 'use')),
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    remaining   INTEGER NOT NULL,
    occurred_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_barcode
    ON activity(barcode);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
