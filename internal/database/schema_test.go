package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRawSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "raw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestInitializeSchema_CreatesTables(t *testing.T) {
	db := openRawSQLite(t)
	ctx := context.Background()

	require.NoError(t, InitializeSchema(ctx, db))

	for _, table := range []string{"sleep", "tag", "sleep_tags", "comment"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist", table)
	}

	version, err := ReadSchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}

func TestInitializeSchema_RollsBackOnFailure(t *testing.T) {
	db := openRawSQLite(t)
	ctx := context.Background()

	// A pre-existing comment table makes the fourth statement fail.
	_, err := db.Exec(`CREATE TABLE comment (id INTEGER)`)
	require.NoError(t, err)

	err = InitializeSchema(ctx, db)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitialization)
	assert.Contains(t, err.Error(), "create comment")

	assert.False(t, tableExists(t, db, "sleep"))
	assert.False(t, tableExists(t, db, "tag"))
	assert.False(t, tableExists(t, db, "sleep_tags"))

	version, err := ReadSchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
}

func TestInitializeSchema_ConstraintsEnforced(t *testing.T) {
	db := openRawSQLite(t)
	ctx := context.Background()
	require.NoError(t, InitializeSchema(ctx, db))

	// Pin one connection so the foreign_keys pragma applies to every statement.
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.ExecContext(ctx, pragmaForeignKeys)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO sleep (night, amount, quality) VALUES ('2022-11-24', -1, 3)`)
	assert.Error(t, err, "negative amount must be rejected")

	_, err = conn.ExecContext(ctx, `INSERT INTO tag (name, color) VALUES ('', 0)`)
	assert.Error(t, err, "empty tag name must be rejected")

	_, err = conn.ExecContext(ctx, `INSERT INTO comment (sleep_id, comment) VALUES (42, 'orphan')`)
	assert.Error(t, err, "comment for a missing sleep must be rejected")
	assert.ErrorIs(t, Classify(err), ErrConstraintViolation)
}

func TestInitializeSchema_Mocked(t *testing.T) {
	ctx := context.Background()

	t.Run("statement failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(pragmaForeignKeys)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE sleep \(`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE TABLE tag \(`).WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		err = InitializeSchema(ctx, db)
		assert.ErrorIs(t, err, ErrInitialization)
		assert.Contains(t, err.Error(), "create tag")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pragma failure aborts before begin", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(pragmaForeignKeys)).WillReturnError(errors.New("locked"))

		err = InitializeSchema(ctx, db)
		assert.ErrorIs(t, err, ErrInitialization)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(pragmaForeignKeys)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectBegin()
		for range schemaDDL {
			mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec(`PRAGMA user_version = 1`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

		err = InitializeSchema(ctx, db)
		assert.ErrorIs(t, err, ErrInitialization)
		assert.Contains(t, err.Error(), "commit")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
