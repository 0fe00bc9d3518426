// Package manager sequences repository calls into the domain operations of
// the sleep tracker.
//
// Reads report a missing row as (nil, nil) and a store failure as (nil, err).
// Updates and deletes report whether a row was affected. Inserts return
// InvalidID together with the error when they fail.
package manager

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/database/comments"
	"github.com/mrlokans/sleeptracker/internal/database/sleeps"
	"github.com/mrlokans/sleeptracker/internal/database/sleeptags"
	"github.com/mrlokans/sleeptracker/internal/database/tags"
)

// InvalidID is returned by inserts that failed. Store ids start at 1.
const InvalidID int64 = -1

type Manager struct {
	stores Stores
	runTx  TxRunner
	log    *zap.Logger
}

type Option func(*Manager)

// WithExplicitCascade makes DeleteSleep and DeleteTag remove dependent rows
// themselves, inside one transaction, instead of relying on ON DELETE
// CASCADE. Use it when the store does not enforce foreign keys.
func WithExplicitCascade(run TxRunner) Option {
	return func(m *Manager) {
		m.runTx = run
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func New(stores Stores, opts ...Option) *Manager {
	m := &Manager{stores: stores, log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromDatabase wires the gorm repositories of db. Explicit cascade is
// switched on when the store reports foreign keys as disabled.
func NewFromDatabase(db *database.Database, log *zap.Logger) *Manager {
	opts := []Option{WithLogger(log)}
	if !db.ForeignKeysEnabled() {
		opts = append(opts, WithExplicitCascade(GormTxRunner(db.DB)))
	}
	return New(StoresFor(db.DB), opts...)
}

// StoresFor builds the repository bundle over a gorm handle, which may be a
// transaction.
func StoresFor(db *gorm.DB) Stores {
	return Stores{
		Sleeps:    sleeps.NewRepository(db),
		Tags:      tags.NewRepository(db),
		SleepTags: sleeptags.NewRepository(db),
		Comments:  comments.NewRepository(db),
	}
}

// GormTxRunner runs each unit of work in a gorm transaction.
func GormTxRunner(db *gorm.DB) TxRunner {
	return func(ctx context.Context, fn func(Stores) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(StoresFor(tx))
		})
	}
}

// ExplicitCascade reports whether deletes cascade in application code.
func (m *Manager) ExplicitCascade() bool {
	return m.runTx != nil
}

// absent turns a not-found error into a nil error so that single-row reads
// can report the row as missing.
func absent(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}
