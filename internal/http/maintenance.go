package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// MaintenanceController exposes the dangling-row repair.
// With a task queue the repair is enqueued; otherwise it runs inline.
type MaintenanceController struct {
	queue    RepairEnqueuer
	repairer Repairer
	status   TaskStatusReader
}

func NewMaintenanceController(queue RepairEnqueuer, repairer Repairer, status TaskStatusReader) *MaintenanceController {
	return &MaintenanceController{queue: queue, repairer: repairer, status: status}
}

// Repair handles POST /api/maintenance/repair
func (mc *MaintenanceController) Repair(c *gin.Context) {
	ctx := c.Request.Context()

	if mc.queue != nil {
		id, err := mc.queue.EnqueueRepair(ctx, "api")
		if err != nil {
			respondInternalError(c, err, "enqueue repair")
			return
		}
		respondAccepted(c, "repair queued", gin.H{"task_id": id})
		return
	}

	if mc.repairer == nil {
		respondError(c, http.StatusServiceUnavailable, "repair is not available")
		return
	}

	report, err := mc.repairer.RepairDanglingRows(ctx)
	if err != nil {
		respondServiceError(c, err, "store", "repair dangling rows")
		return
	}
	loggerFrom(c).Info("Repair completed inline",
		zap.Int64("sleep_tags", report.SleepTags),
		zap.Int64("comments", report.Comments))
	c.JSON(http.StatusOK, SuccessResponse{Message: "repair completed", Data: report})
}

// TaskStatus handles GET /api/maintenance/tasks/:id
func (mc *MaintenanceController) TaskStatus(c *gin.Context) {
	if mc.status == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := mc.status.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": taskID, "status": taskStatusToString(status)})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
