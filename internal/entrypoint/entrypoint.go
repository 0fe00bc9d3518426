package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/config"
	"github.com/mrlokans/sleeptracker/internal/database"
	http_controllers "github.com/mrlokans/sleeptracker/internal/http"
	"github.com/mrlokans/sleeptracker/internal/logging"
	"github.com/mrlokans/sleeptracker/internal/manager"
	"github.com/mrlokans/sleeptracker/internal/scheduler"
	"github.com/mrlokans/sleeptracker/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewLogger builds the application logger from the log section of cfg.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}

// OpenDatabase opens (and on first use creates) the sleep store described
// by cfg.
func OpenDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*database.Database, error) {
	return database.NewDatabase(ctx, cfg.Database.Path, database.Options{
		MaxConnections: cfg.Database.MaxConnections,
		BusyTimeout:    cfg.Database.BusyTimeout,
		Logger:         logging.NewGormLogger(log, cfg.Log.Level),
	}, log)
}

func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops first so no task writes after the server is gone.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

func Run(cfg *config.Config, version string) error {
	log, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting sleeptracker", zap.String("version", version))

	if cfg.Maintenance.Enabled {
		if err := scheduler.ValidateSchedule(cfg.Maintenance.Schedule); err != nil {
			return err
		}
	}

	ctx := context.Background()

	db, err := OpenDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	mgr := manager.NewFromDatabase(db, log)
	if cfg.Global.ReadOnly {
		log.Info("Read-only mode enabled - write requests will be rejected")
	}

	routerCfg := http_controllers.RouterConfig{
		Sleeps:   mgr,
		Tags:     mgr,
		Comments: mgr,
		Store:    db,
		Repairer: db,
		ReadOnly: cfg.Global.ReadOnly,
		Logger:   log,
		Version:  version,
	}

	var (
		taskClient    *tasks.Client
		taskCtxCancel context.CancelFunc
		repairCron    *scheduler.RepairScheduler
	)
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(tasks.NewRepairQueue(db, log))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(ctx)
		taskClient.Start(taskCtx)

		routerCfg.RepairQueue = taskClient
		routerCfg.TaskStatus = taskClient

		if cfg.Maintenance.Enabled {
			repairCron = scheduler.NewRepairScheduler(taskClient, cfg.Maintenance.Schedule, log)
			if err := repairCron.Start(taskCtx); err != nil {
				taskCtxCancel()
				return fmt.Errorf("failed to start repair scheduler: %w", err)
			}
		}
	} else if cfg.Maintenance.Enabled {
		log.Warn("Scheduled repair needs the task queue; set TASKS_ENABLED=true to enable it")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if repairCron != nil {
			repairCron.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, log, onShutdown)
}
