package tasks

import "context"

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskStartupCheck is the name of the one-shot permission check.
const TaskStartupCheck = "startup_check"

// RegisterStartupTasks returns the one-shot tasks to run shortly after the
// bot starts polling, keyed by name.
func RegisterStartupTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		TaskStartupCheck: NewStartupCheckTask(deps),
	}

	deps.Logger.Info("Initialized startup tasks", "count", len(tasks))
	return tasks
}
