package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultMaxConnections caps the pool. SQLite serialises writers, so a
// small pool is enough for concurrent readers.
const DefaultMaxConnections = 4

type Options struct {
	MaxConnections int
	BusyTimeout    time.Duration
	Logger         gormlogger.Interface
}

type Database struct {
	DB *gorm.DB

	path        string
	foreignKeys bool
	created     bool
	log         *zap.Logger
}

// NewDatabase opens the store at dbPath. When the file does not exist yet it
// is created and the schema initializer runs; an existing file is opened as
// is and only its schema version is checked.
func NewDatabase(ctx context.Context, dbPath string, opts Options, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	existed, err := storeExists(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	cfg := &gorm.Config{Logger: opts.Logger}
	if cfg.Logger == nil {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath, opts)), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %w", ErrStoreUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	maxConns := opts.MaxConnections
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	database := &Database{DB: db, path: dbPath, created: !existed, log: log}

	if !existed {
		if err := InitializeSchema(ctx, sqlDB); err != nil {
			database.discard()
			return nil, err
		}
		log.Info("Database schema initialized", zap.String("path", dbPath), zap.Int("version", SchemaVersion))
	} else {
		version, err := ReadSchemaVersion(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		if version != SchemaVersion {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: store has version %d, expected %d", ErrUnsupportedSchema, version, SchemaVersion)
		}
	}

	if err := db.WithContext(ctx).Raw("PRAGMA foreign_keys").Scan(&database.foreignKeys).Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: read foreign_keys pragma: %w", ErrStoreUnavailable, err)
	}
	if !database.foreignKeys {
		log.Warn("Foreign keys are not enforced; cascades will run explicitly", zap.String("path", dbPath))
	}

	log.Info("Database opened",
		zap.String("path", dbPath),
		zap.Bool("created", database.created),
		zap.Int("max_connections", maxConns))

	return database, nil
}

func dsn(path string, opts Options) string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return fmt.Sprintf("%s?_foreign_keys=on&_journal=WAL&_busy_timeout=%d", path, busy.Milliseconds())
}

func storeExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// discard closes the pool and removes a store whose initialization failed,
// so the next start runs the initializer again instead of treating the
// empty file as an existing store.
func (d *Database) discard() {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(d.path + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.log.Warn("Failed to remove store after initialization failure",
				zap.String("path", d.path+suffix), zap.Error(err))
		}
	}
}

// ForeignKeysEnabled reports whether the store enforces ON DELETE CASCADE.
func (d *Database) ForeignKeysEnabled() bool {
	return d.foreignKeys
}

// Created reports whether this open created the store.
func (d *Database) Created() bool {
	return d.created
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return Classify(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
