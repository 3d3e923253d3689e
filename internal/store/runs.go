package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type BatchRunStore struct {
	db *sqlx.DB
}

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusInProgress = "IN_PROGRESS"
	StatusSuccess    = "SUCCESS"
	StatusFailure    = "FAILURE"
)

func (rs *BatchRunStore) InsertBatchRun(ctx context.Context, run *BatchRun) error {
	query := `INSERT INTO batch_runs (
		run_date,
		trigger_type,
		status,
		sector_scope
	) VALUES (
		:run_date,
		:trigger_type,
		:status,
		:sector_scope
	) RETURNING id, started_at`

	rows, err := rs.db.NamedQueryContext(ctx, query, run)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.ID, &run.StartedAt); err != nil {
			return err
		}
	}
	return nil
}

// FinalizeBatchRun records the terminal status and the run counters.
func (rs *BatchRunStore) FinalizeBatchRun(ctx context.Context, run *BatchRun) error {
	query := `UPDATE batch_runs SET
		status = :status,
		units_total = :units_total,
		units_projected = :units_projected,
		units_skipped = :units_skipped,
		projection_rows = :projection_rows,
		gain_mean = :gain_mean,
		finished_at = NOW()
	WHERE id = :id`

	_, err := rs.db.NamedExecContext(ctx, query, run)
	return err
}

func (rs *BatchRunStore) GetLatest(ctx context.Context, limit int) ([]BatchRun, error) {
	var runs []BatchRun
	query := `SELECT id, run_date, trigger_type, status, sector_scope,
		units_total, units_projected, units_skipped, projection_rows,
		gain_mean, started_at, finished_at
	FROM batch_runs
	ORDER BY started_at DESC
	LIMIT $1`

	if err := rs.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, err
	}
	return runs, nil
}
