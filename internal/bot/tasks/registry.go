package tasks

import (
	"context"
)

// ScheduledTaskFunc is the signature of every scheduled task. Tasks must
// honour ctx cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names used as keys in the scheduler configuration.
const (
	NormalizePendingTask = "normalize_pending"
	SQLMaintenanceTask   = "sql_maintenance"
)

// RegisterAllTasks returns every scheduled task keyed by its configuration name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[NormalizePendingTask] = newNormalizePendingTask(deps)
	tasks[SQLMaintenanceTask] = newSQLMaintenanceTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
