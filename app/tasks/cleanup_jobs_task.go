package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thoughtforge/thoughtforge/app/database"
)

// CleanupJobsTask deletes completed and failed jobs older than the
// configured retention window.
type CleanupJobsTask struct {
	Task
	jobRepo database.JobRepository
	ttl     time.Duration
}

func NewCleanupJobsTask(jobRepo database.JobRepository, ttl time.Duration) *CleanupJobsTask {
	return &CleanupJobsTask{
		Task:    NewTask(TaskTypeCleanupJobs),
		jobRepo: jobRepo,
		ttl:     ttl,
	}
}

func (t *CleanupJobsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().Add(-t.ttl)

	deleted, err := t.jobRepo.DeleteTerminalBefore(ctx, cutoff)
	if err != nil {
		slog.Error("Task failed", "type", "CleanupJobs", "error", err)
		return fmt.Errorf("failed to clean up terminal jobs: %w", err)
	}

	if deleted > 0 {
		slog.Info("Task completed",
			"type", "CleanupJobs",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
			"duration", t.GetDuration())
	}

	return nil
}
