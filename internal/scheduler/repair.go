package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TriggerSchedule marks repair tasks enqueued by the scheduler.
const TriggerSchedule = "schedule"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// RepairEnqueuer hands a repair request to the task queue.
type RepairEnqueuer interface {
	EnqueueRepair(ctx context.Context, trigger string) (string, error)
}

// RepairScheduler periodically enqueues dangling row repairs.
type RepairScheduler struct {
	enqueuer RepairEnqueuer
	schedule string
	log      *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

func NewRepairScheduler(enqueuer RepairEnqueuer, schedule string, log *zap.Logger) *RepairScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RepairScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		log:      log.Named("scheduler"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the repair job and starts the cron loop. The scheduler
// stops on its own when ctx is cancelled.
func (s *RepairScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule repair job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Repair scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and halts the cron loop.
func (s *RepairScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("Repair scheduler stopped")
}

// RunNow enqueues a repair immediately, outside the schedule.
func (s *RepairScheduler) RunNow(ctx context.Context) (string, error) {
	return s.enqueuer.EnqueueRepair(ctx, TriggerSchedule)
}

func (s *RepairScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next repair will be enqueued, or nil when the
// scheduler is stopped.
func (s *RepairScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *RepairScheduler) enqueue(ctx context.Context) {
	id, err := s.enqueuer.EnqueueRepair(ctx, TriggerSchedule)
	if err != nil {
		s.log.Error("Failed to enqueue scheduled repair", zap.Error(err))
		return
	}
	s.log.Info("Enqueued scheduled repair", zap.String("task_id", id))
}
