package tasks

import (
	"github.com/aniview/aniview/internal/database"
	"github.com/aniview/aniview/internal/scheduler"
)

const DatabaseMaintenanceTaskID = "database-maintenance"

// RegisterDatabaseMaintenanceTask registers the daily SQLite housekeeping
// task: WAL checkpoint plus query planner statistics refresh.
func RegisterDatabaseMaintenanceTask(sched *scheduler.Scheduler, db *database.DB) error {
	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          DatabaseMaintenanceTaskID,
		Name:        "Database Maintenance",
		Description: "Checkpoints the WAL file and refreshes query planner statistics",
		Cron:        "0 4 * * *",
		RunOnStart:  false,
		Func:        db.Maintain,
	})
}
