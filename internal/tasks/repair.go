package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/database"
)

// RepairQueueName is the backlite queue that runs dangling row repairs.
const RepairQueueName = "repair_dangling_rows"

// DanglingRowRepairer removes sleep_tags and comment rows without a parent.
type DanglingRowRepairer interface {
	RepairDanglingRows(ctx context.Context) (database.RepairReport, error)
}

// RepairDanglingRowsTask asks for one repair pass. Trigger records who
// enqueued it (schedule, api, cli).
type RepairDanglingRowsTask struct {
	Trigger string `json:"trigger"`
}

// Config returns the queue configuration for repair tasks.
func (t RepairDanglingRowsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        RepairQueueName,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RepairDanglingRowsProcessor creates a processor function for RepairDanglingRowsTask.
func RepairDanglingRowsProcessor(repairer DanglingRowRepairer, log *zap.Logger) backlite.QueueProcessor[RepairDanglingRowsTask] {
	return func(ctx context.Context, task RepairDanglingRowsTask) error {
		if repairer == nil {
			return fmt.Errorf("dangling row repairer not configured")
		}

		report, err := repairer.RepairDanglingRows(ctx)
		if err != nil {
			return fmt.Errorf("repair dangling rows: %w", err)
		}

		log.Info("Repair task finished",
			zap.String("trigger", task.Trigger),
			zap.Int64("sleep_tags", report.SleepTags),
			zap.Int64("comments", report.Comments))
		return nil
	}
}

// NewRepairQueue creates a backlite queue for repair tasks.
func NewRepairQueue(repairer DanglingRowRepairer, log *zap.Logger) backlite.Queue {
	if log == nil {
		log = zap.NewNop()
	}
	return backlite.NewQueue(RepairDanglingRowsProcessor(repairer, log))
}

// EnqueueRepair adds one repair task and returns its id.
func (c *Client) EnqueueRepair(ctx context.Context, trigger string) (string, error) {
	ids, err := c.Add(RepairDanglingRowsTask{Trigger: trigger}).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue repair: %w", err)
	}
	return ids[0], nil
}
