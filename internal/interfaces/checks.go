package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/database/comments"
	"github.com/mrlokans/sleeptracker/internal/database/sleeps"
	"github.com/mrlokans/sleeptracker/internal/database/sleeptags"
	"github.com/mrlokans/sleeptracker/internal/database/tags"
	"github.com/mrlokans/sleeptracker/internal/http"
	"github.com/mrlokans/sleeptracker/internal/manager"
	"github.com/mrlokans/sleeptracker/internal/scheduler"
	"github.com/mrlokans/sleeptracker/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ manager.SleepStore = (*sleeps.Repository)(nil)
var _ manager.TagStore = (*tags.Repository)(nil)
var _ manager.SleepTagStore = (*sleeptags.Repository)(nil)
var _ manager.CommentStore = (*comments.Repository)(nil)

// =============================================================================
// HTTP Services
// =============================================================================

var _ http.SleepService = (*manager.Manager)(nil)
var _ http.TagService = (*manager.Manager)(nil)
var _ http.CommentService = (*manager.Manager)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.Repairer = (*database.Database)(nil)

// =============================================================================
// Maintenance
// =============================================================================

var _ tasks.DanglingRowRepairer = (*database.Database)(nil)
var _ http.RepairEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ scheduler.RepairEnqueuer = (*tasks.Client)(nil)
