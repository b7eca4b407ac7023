package tasks

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/thoughtforge/thoughtforge/app/content"
	"github.com/thoughtforge/thoughtforge/app/database"
	"github.com/thoughtforge/thoughtforge/app/worker"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	return db
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeRunWorker)

	if task.GetType() != TaskTypeRunWorker {
		t.Errorf("type = %s", task.GetType())
	}
	if task.GetID() == "" {
		t.Error("expected non-empty id")
	}
	if !task.CanRetry() {
		t.Error("fresh task should be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("exhausted task should not be retryable")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("retry count = %d, want %d", task.GetRetryCount(), DefaultMaxRetries)
	}
}

func TestEnqueueThoughtJobTask(t *testing.T) {
	db := newTestDB(t)
	jobRepo := database.NewJobRepository(db)
	ctx := context.Background()

	task := NewEnqueueThoughtJobTask(jobRepo)
	task.Start()
	if err := task.Execute(ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	count, err := jobRepo.QueuedCount(ctx)
	if err != nil {
		t.Fatalf("QueuedCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("queued = %d, want 1", count)
	}

	// A queued job already exists, so a second pass enqueues nothing.
	second := NewEnqueueThoughtJobTask(jobRepo)
	second.Start()
	if err := second.Execute(ctx); err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	count, err = jobRepo.QueuedCount(ctx)
	if err != nil {
		t.Fatalf("QueuedCount: %v", err)
	}
	if count != 1 {
		t.Errorf("queued = %d, want 1", count)
	}
}

func TestRunWorkerTaskDrainsQueue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	jobRepo := database.NewJobRepository(db)
	basisRepo := database.NewBasisRepository(db)
	thoughtRepo := database.NewThoughtRepository(db)

	approved := true
	if _, err := basisRepo.Create(ctx, database.BasisEntryInput{
		BasisType:  "article",
		Reference:  "ref",
		SourceText: "text",
		Theme:      "focus",
		Approved:   &approved,
	}); err != nil {
		t.Fatalf("Create basis: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := jobRepo.Create(ctx, "personal_thought", json.RawMessage(`{}`)); err != nil {
			t.Fatalf("Create job: %v", err)
		}
	}

	runner := worker.NewRunner(jobRepo, basisRepo, thoughtRepo,
		content.NewGenerator(content.ModePlaceholder))

	task := NewRunWorkerTask(runner, "task-worker")
	task.Start()
	if err := task.Execute(ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	count, err := jobRepo.QueuedCount(ctx)
	if err != nil {
		t.Fatalf("QueuedCount: %v", err)
	}
	if count != 0 {
		t.Errorf("queued = %d, want 0", count)
	}

	thoughts, err := thoughtRepo.List(ctx, database.ThoughtStatusDraft, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(thoughts) != 3 {
		t.Errorf("len(thoughts) = %d, want 3", len(thoughts))
	}
}

func TestCleanupJobsTask(t *testing.T) {
	db := newTestDB(t)
	jobRepo := database.NewJobRepository(db)
	ctx := context.Background()

	job, err := jobRepo.Create(ctx, "personal_thought", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	if _, err := jobRepo.ClaimNext(ctx, "w1"); err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if _, err := jobRepo.Complete(ctx, job.ID, nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Zero TTL means any terminal job older than now is eligible.
	time.Sleep(2 * time.Millisecond)
	task := NewCleanupJobsTask(jobRepo, 0)
	task.Start()
	if err := task.Execute(ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	stored, err := jobRepo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored != nil {
		t.Error("terminal job survived cleanup")
	}
}
