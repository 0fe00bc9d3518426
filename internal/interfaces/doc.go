// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - SleepStore, TagStore, SleepTagStore, CommentStore: per-table
//     repositories consumed by the aggregate manager (internal/manager/interfaces.go)
//   - TxRunner: runs a unit of work against transaction-scoped stores
//     (internal/manager/interfaces.go)
//
// ## HTTP Service Interfaces
//
//   - SleepService, TagService, CommentService: manager operations behind
//     the JSON API (internal/http/stores.go)
//   - Pinger: store connectivity for /health
//   - Repairer, RepairEnqueuer, TaskStatusReader: dangling-row repair,
//     inline or through the task queue
//
// ## Maintenance Interfaces
//
//   - DanglingRowRepairer: what the repair task runs (internal/tasks/repair.go)
//   - RepairEnqueuer: what the cron scheduler triggers (internal/scheduler/repair.go)
//
// # Adding a New Table
//
// To add a new table (e.g., a per-night mood entry):
//
//  1. Add the DDL to schemaDDL in internal/database/schema.go and bump
//     SchemaVersion.
//
//  2. Create sub-package: internal/database/moods/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in internal/manager/interfaces.go, add it
//     to Stores and StoresFor, and expose operations on the Manager.
//
//  4. Add compile-time check:
//
//     var _ manager.MoodStore = (*moods.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
