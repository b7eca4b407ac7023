package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoughtforge/thoughtforge/app/worker"
)

// RunWorkerTask drains the job queue through the content pipeline, one
// claimed job per pass, until no work remains.
type RunWorkerTask struct {
	Task
	runner   *worker.Runner
	workerID string
}

func NewRunWorkerTask(runner *worker.Runner, workerID string) *RunWorkerTask {
	return &RunWorkerTask{
		Task:     NewTask(TaskTypeRunWorker),
		runner:   runner,
		workerID: workerID,
	}
}

func (t *RunWorkerTask) Execute(ctx context.Context) error {
	processed := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := t.runner.Run(ctx, t.workerID)
		if err != nil {
			slog.Error("Task failed", "type", "RunWorker", "worker_id", t.workerID, "error", err)
			return fmt.Errorf("worker run failed: %w", err)
		}
		if result.NoJob {
			break
		}

		processed++
		if result.FailureMessage != "" {
			slog.Warn("Job resolved as failed", "job_id", result.JobID, "error", result.FailureMessage)
		} else {
			slog.Debug("Job completed", "job_id", result.JobID, "thought_id", result.ThoughtID)
		}
	}

	slog.Info("Task completed",
		"type", "RunWorker",
		"worker_id", t.workerID,
		"processed", processed,
		"duration", t.GetDuration())

	return nil
}
