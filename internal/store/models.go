package store

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// BatchRun represents the 'batch_runs' table: one row per pipeline
// execution, created IN_PROGRESS and finalized when the run ends.
type BatchRun struct {
	ID             int64          `db:"id"`
	RunDate        time.Time      `db:"run_date"`
	TriggerType    string         `db:"trigger_type"`
	Status         string         `db:"status"`
	SectorScope    pq.StringArray `db:"sector_scope"`
	UnitsTotal     int            `db:"units_total"`
	UnitsProjected int            `db:"units_projected"`
	UnitsSkipped   int            `db:"units_skipped"`
	ProjectionRows int            `db:"projection_rows"`
	GainMean       float64        `db:"gain_mean"`
	StartedAt      time.Time      `db:"started_at"`
	FinishedAt     sql.NullTime   `db:"finished_at"`
}

// ProjectionRow represents the 'projection_rows' table.
type ProjectionRow struct {
	ID              int64     `db:"id"`
	RunID           int64     `db:"run_id"`
	SectorCode      string    `db:"sector_code"`
	Cycle           int       `db:"cycle"`
	House           int       `db:"house"`
	Sex             string    `db:"sex"`
	ProjectionDate  time.Time `db:"projection_date"`
	AgeDays         int       `db:"age_days"`
	FeedCompliance  float64   `db:"feed_compliance"`
	FeedStandard    float64   `db:"feed_standard"`
	FeedConsumption float64   `db:"feed_consumption"`
	WeightGrams     float64   `db:"weight_grams"`
	Source          string    `db:"source"`
	InsertedAt      time.Time `db:"inserted_at"`
}
