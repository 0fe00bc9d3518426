package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrStoreUnavailable means the store could not be opened or reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation covers NOT NULL, CHECK, UNIQUE and foreign key failures.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInitialization is returned when schema creation fails. No partial
	// schema is left behind.
	ErrInitialization = errors.New("schema initialization failed")

	// ErrUnsupportedSchema is returned when an existing store carries a schema
	// version this build does not know.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)

// Classify maps a raw gorm or sqlite error onto the package sentinels so
// callers can branch with errors.Is. The original error stays in the chain.
// Errors that are already classified, and errors it does not recognise, are
// returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrIoErr,
			sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCorrupt, sqlite3.ErrReadonly:
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	// database/sql does not export its closed-pool error.
	if strings.Contains(err.Error(), "sql: database is closed") {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return err
}

func isClassified(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, ErrInitialization) ||
		errors.Is(err, ErrUnsupportedSchema)
}
