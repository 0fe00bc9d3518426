package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/entities"
)

// This file consolidates the service interfaces used by HTTP controllers.
// *manager.Manager satisfies all three domain interfaces.

// SleepService provides the sleep operations behind /api/sleeps.
type SleepService interface {
	GetSleep(ctx context.Context, id int64, includeTags bool) (*entities.SleepAggregate, error)
	GetAllSleeps(ctx context.Context) ([]entities.SleepAggregate, error)
	GetMultipleSleeps(ctx context.Context, ids []int64) ([]entities.SleepAggregate, error)
	GetSleepsByMonth(ctx context.Context, month, year int) ([]entities.SleepAggregate, error)
	GetSleepsInRange(ctx context.Context, start, end entities.RangeBound) ([]entities.Sleep, error)
	GetSleepsWithTags(ctx context.Context, ids []int64) ([]entities.SleepAggregate, error)
	InsertSleep(ctx context.Context, night string, amount float64, quality int64) (int64, error)
	UpdateSleepAmount(ctx context.Context, id int64, amount float64) (bool, error)
	UpdateSleepQuality(ctx context.Context, id int64, quality int64) (bool, error)
	DeleteSleep(ctx context.Context, id int64) (bool, error)
	AddTagsToSleep(ctx context.Context, sleepID int64, tagIDs []int64) (bool, error)
	RemoveTagFromSleep(ctx context.Context, sleepID, tagID int64) (bool, error)
	GetTagsBySleep(ctx context.Context, sleepID int64) ([]entities.Tag, error)
	GetCommentsBySleep(ctx context.Context, sleepID int64) ([]entities.Comment, error)
	InsertComment(ctx context.Context, sleepID int64, text string) (int64, error)
}

// TagService provides the tag operations behind /api/tags.
type TagService interface {
	GetTag(ctx context.Context, id int64) (*entities.Tag, error)
	GetAllTags(ctx context.Context) ([]entities.Tag, error)
	SearchTags(ctx context.Context, query string) ([]entities.Tag, error)
	InsertTag(ctx context.Context, name string, color int64) (int64, error)
	UpdateTagName(ctx context.Context, id int64, name string) (bool, error)
	UpdateTagColor(ctx context.Context, id int64, color int64) (bool, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)
	GetSleepsByTag(ctx context.Context, tagID int64) ([]entities.SleepAggregate, error)
}

// CommentService provides the comment operations behind /api/comments.
type CommentService interface {
	GetComment(ctx context.Context, id int64) (*entities.Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) (bool, error)
	DeleteComment(ctx context.Context, id int64) (bool, error)
}

// RepairEnqueuer hands a repair request to the task queue.
type RepairEnqueuer interface {
	EnqueueRepair(ctx context.Context, trigger string) (string, error)
}

// Repairer runs a repair pass inline.
type Repairer interface {
	RepairDanglingRows(ctx context.Context) (database.RepairReport, error)
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TaskStatusReader looks up queued task state.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
