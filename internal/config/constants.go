package config

const (
	// DefaultDatabasePath is where the sleep store lives unless DATABASE_PATH is set.
	DefaultDatabasePath = "./sleep.db"

	// DefaultMaintenanceSchedule runs the dangling row repair nightly at 03:00.
	DefaultMaintenanceSchedule = "0 3 * * *"
)
