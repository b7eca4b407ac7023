package api

import (
	"context"

	"github.com/thoughtforge/thoughtforge/app/database"
	"github.com/thoughtforge/thoughtforge/app/worker"
)

// WorkerRunner executes one pass of the content pipeline.
type WorkerRunner interface {
	Run(ctx context.Context, workerID string) (*worker.Result, error)
}

var _ WorkerRunner = (*worker.Runner)(nil)

type Handler struct {
	db          *database.DB
	basisRepo   database.BasisRepository
	jobRepo     database.JobRepository
	thoughtRepo database.ThoughtRepository
	runner      WorkerRunner
	workerID    string
}
