package store

import (
	"context"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Runs interface {
		InsertBatchRun(ctx context.Context, run *BatchRun) error
		FinalizeBatchRun(ctx context.Context, run *BatchRun) error
		GetLatest(ctx context.Context, limit int) ([]BatchRun, error)
	}

	Projections interface {
		InsertProjectionRows(ctx context.Context, runID int64, records []types.ProjectionRecord) error
		GetProjectionRows(ctx context.Context, runID int64) ([]ProjectionRow, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Runs:        &BatchRunStore{db: db},
		Projections: &ProjectionStore{db: db},
	}
}
