// Package database provides the data access layer for the sleep store.
//
// # Architecture
//
// The database layer is organized into table-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pool, existence check
//	├── schema.go        # One-shot schema initializer
//	├── errors.go        # Error sentinels and classification
//	├── maintenance.go   # Dangling row repair
//	├── sleeps/          # sleep table
//	├── tags/            # tag table
//	├── sleeptags/       # sleep_tags join table
//	└── comments/        # comment table
//
// # Using Sub-packages
//
// Each sub-package provides a Repository bound to a *gorm.DB. Passing a
// transaction handle instead of db.DB scopes the repository to it:
//
//	db, err := database.NewDatabase(ctx, "./sleep.db", database.Options{}, logger)
//
//	sleepsRepo := sleeps.NewRepository(db.DB)
//	tagsRepo := tags.NewRepository(db.DB)
//
//	sleep, err := sleepsRepo.SelectOne(ctx, 1)
//
// # Errors
//
// Repository methods return errors already passed through Classify, so
// callers check them with errors.Is against ErrNotFound,
// ErrConstraintViolation and ErrStoreUnavailable.
package database
