package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is written to PRAGMA user_version once the tables exist.
const SchemaVersion = 1

const pragmaForeignKeys = `PRAGMA foreign_keys = ON`

const createSleepTable = `CREATE TABLE sleep (
    id         INTEGER  NOT NULL PRIMARY KEY AUTOINCREMENT,
    night      TEXT     NOT NULL,
    amount     REAL     NOT NULL CHECK (amount >= 0),
    quality    INTEGER  NOT NULL,
    created_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const createTagTable = `CREATE TABLE tag (
    id         INTEGER  NOT NULL PRIMARY KEY AUTOINCREMENT,
    name       TEXT     NOT NULL CHECK (name <> ''),
    color      INTEGER  NOT NULL,
    created_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const createSleepTagsTable = `CREATE TABLE sleep_tags (
    id       INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
    sleep_id INTEGER NOT NULL REFERENCES sleep (id) ON DELETE CASCADE,
    tag_id   INTEGER NOT NULL REFERENCES tag (id) ON DELETE CASCADE
)`

const createCommentTable = `CREATE TABLE comment (
    id       INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
    sleep_id INTEGER NOT NULL REFERENCES sleep (id) ON DELETE CASCADE,
    comment  TEXT    NOT NULL
)`

type ddlStatement struct {
	name string
	sql  string
}

// schemaDDL runs in order: the join tables reference sleep and tag.
var schemaDDL = []ddlStatement{
	{"sleep", createSleepTable},
	{"tag", createTagTable},
	{"sleep_tags", createSleepTagsTable},
	{"comment", createCommentTable},
	{"idx_sleep_night", `CREATE INDEX idx_sleep_night ON sleep (night)`},
	{"idx_sleep_tags_sleep_id", `CREATE INDEX idx_sleep_tags_sleep_id ON sleep_tags (sleep_id)`},
	{"idx_sleep_tags_tag_id", `CREATE INDEX idx_sleep_tags_tag_id ON sleep_tags (tag_id)`},
	{"idx_comment_sleep_id", `CREATE INDEX idx_comment_sleep_id ON comment (sleep_id)`},
}

// InitializeSchema creates the four tables of a brand-new store inside one
// transaction. Any failure rolls the whole schema back and is reported as
// ErrInitialization. It must only be called for a store that did not exist
// before it was opened.
func InitializeSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, pragmaForeignKeys); err != nil {
		return fmt.Errorf("%w: enable foreign keys: %w", ErrInitialization, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrInitialization, err)
	}

	for _, stmt := range schemaDDL {
		if _, err := tx.ExecContext(ctx, stmt.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: create %s: %w", ErrInitialization, stmt.name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: set schema version: %w", ErrInitialization, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrInitialization, err)
	}
	return nil
}

// ReadSchemaVersion returns the store's PRAGMA user_version.
func ReadSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
