// Package worker implements the run-once content pipeline: claim a job,
// read the oldest approved basis entry, synthesize a draft thought and
// resolve the job.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoughtforge/thoughtforge/app/content"
	"github.com/thoughtforge/thoughtforge/app/database"
)

// NoBasisMessage is recorded on a job that was claimed while no approved
// basis entries existed.
const NoBasisMessage = "No approved basis entries available."

// Result describes the outcome of a single pipeline run.
type Result struct {
	// NoJob is true when there was nothing to claim. Not an error.
	NoJob bool
	// JobID is set whenever a job was claimed, including resolved failures.
	JobID string
	// ThoughtID is set on success.
	ThoughtID string
	// FailureMessage is set when the claimed job was resolved as failed
	// (e.g. no basis material); the job is not left dangling.
	FailureMessage string
}

type Runner struct {
	jobRepo     database.JobRepository
	basisRepo   database.BasisRepository
	thoughtRepo database.ThoughtRepository
	generator   *content.Generator
}

func NewRunner(jobRepo database.JobRepository, basisRepo database.BasisRepository,
	thoughtRepo database.ThoughtRepository, generator *content.Generator) *Runner {
	return &Runner{
		jobRepo:     jobRepo,
		basisRepo:   basisRepo,
		thoughtRepo: thoughtRepo,
		generator:   generator,
	}
}

// Run executes the pipeline once. Any error after a successful claim fails
// the job best-effort before returning, so jobs do not get stuck in
// processing.
func (r *Runner) Run(ctx context.Context, workerID string) (*Result, error) {
	job, err := r.jobRepo.ClaimNext(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	if job == nil {
		return &Result{NoJob: true}, nil
	}

	basis, err := r.basisRepo.OldestApproved(ctx)
	if err != nil {
		r.failJob(ctx, job.ID, err.Error())
		return nil, fmt.Errorf("fetch basis entry: %w", err)
	}
	if basis == nil {
		if updated, failErr := r.jobRepo.Fail(ctx, job.ID, NoBasisMessage); failErr != nil || !updated {
			slog.Warn("Failed to resolve job without basis entries", "job_id", job.ID, "updated", updated, "error", failErr)
		}
		return &Result{JobID: job.ID, FailureMessage: NoBasisMessage}, nil
	}

	draft := r.generator.Run(*basis)

	thought, err := r.thoughtRepo.Create(ctx, database.ThoughtInput{
		BasisID:  &basis.ID,
		Title:    draft.Title,
		Body:     draft.Body,
		Category: draft.Category,
	})
	if err != nil {
		r.failJob(ctx, job.ID, err.Error())
		return nil, fmt.Errorf("create thought: %w", err)
	}

	// The job is known to be held by this run, so the guard always passes
	// unless something external resolved it meanwhile.
	updated, err := r.jobRepo.Complete(ctx, job.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("complete job: %w", err)
	}
	if !updated {
		slog.Warn("Claimed job was no longer processing at completion", "job_id", job.ID)
	}

	return &Result{JobID: job.ID, ThoughtID: thought.ID}, nil
}

// failJob resolves a claimed job as failed without masking the original
// error; a failure here is only logged.
func (r *Runner) failJob(ctx context.Context, jobID, message string) {
	if _, err := r.jobRepo.Fail(ctx, jobID, message); err != nil {
		slog.Error("Failed to mark job failed", "job_id", jobID, "error", err)
	}
}
