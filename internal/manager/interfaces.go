package manager

import (
	"context"

	"github.com/mrlokans/sleeptracker/internal/entities"
)

// SleepStore is the single-table access the manager needs for sleeps.
type SleepStore interface {
	Insert(ctx context.Context, sleep entities.Sleep) (int64, error)
	SelectOne(ctx context.Context, id int64) (*entities.Sleep, error)
	SelectAll(ctx context.Context) ([]entities.Sleep, error)
	SelectByMonth(ctx context.Context, month, year int) ([]entities.Sleep, error)
	UpdateAmount(ctx context.Context, id int64, amount float64) (bool, error)
	UpdateQuality(ctx context.Context, id int64, quality int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type TagStore interface {
	Insert(ctx context.Context, tag entities.Tag) (int64, error)
	SelectOne(ctx context.Context, id int64) (*entities.Tag, error)
	SelectAll(ctx context.Context) ([]entities.Tag, error)
	SearchByName(ctx context.Context, query string) ([]entities.Tag, error)
	UpdateName(ctx context.Context, id int64, name string) (bool, error)
	UpdateColor(ctx context.Context, id int64, color int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type SleepTagStore interface {
	Insert(ctx context.Context, sleepID, tagID int64) (int64, error)
	SelectAll(ctx context.Context) ([]entities.SleepTag, error)
	SelectBySleepID(ctx context.Context, sleepID int64) ([]entities.SleepTag, error)
	SelectByTagID(ctx context.Context, tagID int64) ([]entities.SleepTag, error)
	Delete(ctx context.Context, sleepID, tagID int64) (bool, error)
	DeleteBySleepID(ctx context.Context, sleepID int64) (int64, error)
	DeleteByTagID(ctx context.Context, tagID int64) (int64, error)
}

type CommentStore interface {
	Insert(ctx context.Context, sleepID int64, text string) (int64, error)
	SelectOne(ctx context.Context, id int64) (*entities.Comment, error)
	SelectAll(ctx context.Context) ([]entities.Comment, error)
	SelectBySleepID(ctx context.Context, sleepID int64) ([]entities.Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteBySleepID(ctx context.Context, sleepID int64) (int64, error)
}

// Stores bundles the repositories one unit of work runs against.
type Stores struct {
	Sleeps    SleepStore
	Tags      TagStore
	SleepTags SleepTagStore
	Comments  CommentStore
}

// TxRunner runs fn against stores bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner func(ctx context.Context, fn func(Stores) error) error
