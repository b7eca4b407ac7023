package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ JobRepository = (*jobRepository)(nil)

type jobRepository struct {
	db *DB
}

// NewJobRepository creates a new content job repository
func NewJobRepository(db *DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, jobType string, payload json.RawMessage) (*ContentJob, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	// Status is deliberately omitted so the schema default applies.
	var status JobStatus
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO content_jobs (id, type, payload, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING status
	`, id, jobType, string(payload), now).Scan(&status)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return &ContentJob{
		ID:        id,
		Type:      jobType,
		Payload:   payload,
		Status:    status,
		CreatedAt: now,
	}, nil
}

func (r *jobRepository) Get(ctx context.Context, id string) (*ContentJob, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, payload, status, worker_id, result, error, created_at, started_at, completed_at
		FROM content_jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}

	return job, nil
}

// ClaimNext transitions the oldest queued job to processing and returns it.
// The claim is a single conditional UPDATE, so at-most-once assignment is
// guaranteed by the storage engine's write lock; no in-process locking.
func (r *jobRepository) ClaimNext(ctx context.Context, workerID string) (*ContentJob, error) {
	now := time.Now().UTC()

	row := r.db.QueryRowContext(ctx, `
		UPDATE content_jobs
		SET status = ?, worker_id = ?, started_at = ?
		WHERE id = (
			SELECT id FROM content_jobs
			WHERE status = ?
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		)
		RETURNING id, type, payload, status, worker_id, result, error, created_at, started_at, completed_at
	`, JobStatusProcessing, workerID, now, JobStatusQueued)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}

	return job, nil
}

func (r *jobRepository) Complete(ctx context.Context, id string, result json.RawMessage) (bool, error) {
	var resultValue interface{}
	if len(result) > 0 {
		resultValue = string(result)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE content_jobs
		SET status = ?, completed_at = ?, result = ?, error = NULL
		WHERE id = ? AND status = ?
	`, JobStatusCompleted, time.Now().UTC(), resultValue, id, JobStatusProcessing)
	if err != nil {
		return false, fmt.Errorf("failed to complete job %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to complete job %s: %w", id, err)
	}

	return affected > 0, nil
}

func (r *jobRepository) Fail(ctx context.Context, id string, message string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE content_jobs
		SET status = ?, completed_at = ?, result = NULL, error = ?
		WHERE id = ? AND status = ?
	`, JobStatusFailed, time.Now().UTC(), message, id, JobStatusProcessing)
	if err != nil {
		return false, fmt.Errorf("failed to fail job %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to fail job %s: %w", id, err)
	}

	return affected > 0, nil
}

func (r *jobRepository) GetStatus(ctx context.Context, id string) (*JobStatus, error) {
	var status JobStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM content_jobs WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status for job %s: %w", id, err)
	}

	return &status, nil
}

func (r *jobRepository) QueuedCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_jobs WHERE status = ?`, JobStatusQueued).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queued jobs: %w", err)
	}

	return count, nil
}

func (r *jobRepository) DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM content_jobs
		WHERE status IN (?, ?)
		AND completed_at IS NOT NULL
		AND completed_at < ?
	`, JobStatusCompleted, JobStatusFailed, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete terminal jobs: %w", err)
	}

	return res.RowsAffected()
}

func scanJob(row rowScanner) (*ContentJob, error) {
	job := &ContentJob{}
	var payload string
	var workerID, result, errMsg sql.NullString
	var startedAt, completedAt sql.NullTime

	err := row.Scan(&job.ID, &job.Type, &payload, &job.Status, &workerID,
		&result, &errMsg, &job.CreatedAt, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	job.Payload = json.RawMessage(payload)
	if workerID.Valid {
		job.WorkerID = &workerID.String
	}
	if result.Valid {
		job.Result = json.RawMessage(result.String)
	}
	if errMsg.Valid {
		job.Error = &errMsg.String
	}
	if startedAt.Valid {
		t := startedAt.Time
		job.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}

	return job, nil
}
