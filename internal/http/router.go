package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig contains the dependencies needed to build the HTTP router.
// Optional dependencies left nil disable the routes that need them.
type RouterConfig struct {
	Sleeps   SleepService
	Tags     TagService
	Comments CommentService

	// Store health
	Store Pinger

	// Maintenance
	RepairQueue RepairEnqueuer
	Repairer    Repairer
	TaskStatus  TaskStatusReader

	// ReadOnly blocks every write endpoint.
	ReadOnly bool

	Logger  *zap.Logger
	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(SecurityHeaders())
	router.Use(ReadOnly(cfg.ReadOnly))

	health := NewHealthController(cfg.Store, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	if cfg.Sleeps != nil {
		sleeps := NewSleepsController(cfg.Sleeps)
		api.GET("/sleeps", sleeps.ListSleeps)
		api.GET("/sleeps/range", sleeps.ListSleepsInRange)
		api.POST("/sleeps", sleeps.CreateSleep)
		api.GET("/sleeps/:id", sleeps.GetSleep)
		api.PATCH("/sleeps/:id", sleeps.UpdateSleep)
		api.DELETE("/sleeps/:id", sleeps.DeleteSleep)
		api.GET("/sleeps/:id/tags", sleeps.GetSleepTags)
		api.POST("/sleeps/:id/tags", sleeps.AddTags)
		api.DELETE("/sleeps/:id/tags/:tag_id", sleeps.RemoveTag)
		api.GET("/sleeps/:id/comments", sleeps.GetSleepComments)
		api.POST("/sleeps/:id/comments", sleeps.AddComment)
	}

	if cfg.Tags != nil {
		tags := NewTagsController(cfg.Tags)
		api.GET("/tags", tags.ListTags)
		api.POST("/tags", tags.CreateTag)
		api.GET("/tags/:id", tags.GetTag)
		api.PATCH("/tags/:id", tags.UpdateTag)
		api.DELETE("/tags/:id", tags.DeleteTag)
		api.GET("/tags/:id/sleeps", tags.GetTagSleeps)
	}

	if cfg.Comments != nil {
		comments := NewCommentsController(cfg.Comments)
		api.GET("/comments/:id", comments.GetComment)
		api.PATCH("/comments/:id", comments.UpdateComment)
		api.DELETE("/comments/:id", comments.DeleteComment)
	}

	maintenance := NewMaintenanceController(cfg.RepairQueue, cfg.Repairer, cfg.TaskStatus)
	api.POST("/maintenance/repair", maintenance.Repair)
	api.GET("/maintenance/tasks/:id", maintenance.TaskStatus)

	return router
}
