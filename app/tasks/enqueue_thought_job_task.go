package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/thoughtforge/thoughtforge/app/database"
)

// EnqueueThoughtJobTask tops up the job queue with a single thought
// generation job. Nothing is enqueued while queued jobs remain, so the
// queue never grows faster than workers drain it.
type EnqueueThoughtJobTask struct {
	Task
	jobRepo database.JobRepository
}

func NewEnqueueThoughtJobTask(jobRepo database.JobRepository) *EnqueueThoughtJobTask {
	return &EnqueueThoughtJobTask{
		Task:    NewTask(TaskTypeEnqueueThoughtJob),
		jobRepo: jobRepo,
	}
}

func (t *EnqueueThoughtJobTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queued, err := t.jobRepo.QueuedCount(ctx)
	if err != nil {
		slog.Error("Task failed", "type", "EnqueueThoughtJob", "error", err)
		return fmt.Errorf("failed to count queued jobs: %w", err)
	}
	if queued > 0 {
		slog.Debug("Queued jobs pending, skipping enqueue", "queued", queued)
		return nil
	}

	job, err := t.jobRepo.Create(ctx, "personal_thought", json.RawMessage(`{"source":"scheduler"}`))
	if err != nil {
		slog.Error("Task failed", "type", "EnqueueThoughtJob", "error", err)
		return fmt.Errorf("failed to create job: %w", err)
	}

	slog.Info("Task completed",
		"type", "EnqueueThoughtJob",
		"job_id", job.ID,
		"duration", t.GetDuration())

	return nil
}
