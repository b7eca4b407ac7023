package database

import (
	"context"
	"encoding/json"
	"time"
)

// BasisRepository handles persistence of basis entries.
type BasisRepository interface {
	Create(ctx context.Context, in BasisEntryInput) (string, error)
	// ListApproved returns approved entries ordered by creation time
	// ascending, optionally filtered by theme and basis type.
	ListApproved(ctx context.Context, theme, basisType string) ([]BasisEntry, error)
	// OldestApproved returns the oldest approved entry, or nil when none exist.
	OldestApproved(ctx context.Context) (*BasisEntry, error)
}

// JobRepository handles persistence and lifecycle transitions of content jobs.
// Claim and the terminal transitions are conditional writes: the database is
// the only concurrency guard.
type JobRepository interface {
	Create(ctx context.Context, jobType string, payload json.RawMessage) (*ContentJob, error)
	Get(ctx context.Context, id string) (*ContentJob, error)
	// ClaimNext atomically selects the oldest queued job, marks it
	// processing for workerID and returns it. Returns nil when no job is
	// available; absence of work is not an error.
	ClaimNext(ctx context.Context, workerID string) (*ContentJob, error)
	// Complete marks a processing job completed with the given result.
	// Returns false when the job is missing or not in processing status.
	Complete(ctx context.Context, id string, result json.RawMessage) (bool, error)
	// Fail marks a processing job failed with the given message.
	// Returns false when the job is missing or not in processing status.
	Fail(ctx context.Context, id string, message string) (bool, error)
	// GetStatus returns the current status of a job, or nil when the job
	// does not exist. Used to tell "not found" apart from "wrong status"
	// after a conditional update affected zero rows.
	GetStatus(ctx context.Context, id string) (*JobStatus, error)
	QueuedCount(ctx context.Context) (int, error)
	DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error)
}

// ThoughtRepository handles persistence of personal thoughts.
type ThoughtRepository interface {
	Create(ctx context.Context, in ThoughtInput) (*PersonalThought, error)
	// List returns thoughts with the given status ordered by creation time
	// descending, optionally filtered by category.
	List(ctx context.Context, status ThoughtStatus, category string) ([]PersonalThought, error)
}
