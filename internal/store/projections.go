package store

import (
	"context"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/jmoiron/sqlx"
)

type ProjectionStore struct {
	db *sqlx.DB
}

// InsertProjectionRows persists every projection row of a run in one
// transaction. A rerun for the same units replaces the previous rows, so
// the table always holds exactly one authoritative row per (unit, date).
func (ps *ProjectionStore) InsertProjectionRows(ctx context.Context, runID int64, records []types.ProjectionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO projection_rows (
		run_id,
		sector_code,
		cycle,
		house,
		sex,
		projection_date,
		age_days,
		feed_compliance,
		feed_standard,
		feed_consumption,
		weight_grams,
		source
	) VALUES (
		:run_id,
		:sector_code,
		:cycle,
		:house,
		:sex,
		:projection_date,
		:age_days,
		:feed_compliance,
		:feed_standard,
		:feed_consumption,
		:weight_grams,
		:source
	) ON CONFLICT (sector_code, cycle, house, projection_date)
	DO UPDATE SET
		run_id = EXCLUDED.run_id,
		sex = EXCLUDED.sex,
		age_days = EXCLUDED.age_days,
		feed_compliance = EXCLUDED.feed_compliance,
		feed_standard = EXCLUDED.feed_standard,
		feed_consumption = EXCLUDED.feed_consumption,
		weight_grams = EXCLUDED.weight_grams,
		source = EXCLUDED.source`

	for _, rec := range records {
		row := ProjectionRow{
			RunID:           runID,
			SectorCode:      rec.Key.SectorCode,
			Cycle:           rec.Key.Cycle,
			House:           rec.Key.House,
			Sex:             rec.Sex,
			ProjectionDate:  rec.Date,
			AgeDays:         rec.AgeDays,
			FeedCompliance:  rec.FeedCompliance,
			FeedStandard:    rec.FeedStandard,
			FeedConsumption: rec.FeedConsumption,
			WeightGrams:     rec.WeightGrams,
			Source:          string(rec.Source),
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetProjectionRows returns the persisted rows of one run in date order.
func (ps *ProjectionStore) GetProjectionRows(ctx context.Context, runID int64) ([]ProjectionRow, error) {
	var rows []ProjectionRow
	query := `SELECT id, run_id, sector_code, cycle, house, sex,
		projection_date, age_days, feed_compliance, feed_standard,
		feed_consumption, weight_grams, source, inserted_at
	FROM projection_rows
	WHERE run_id = $1
	ORDER BY sector_code, cycle, house, projection_date`

	if err := ps.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, err
	}
	return rows, nil
}
