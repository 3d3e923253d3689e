package types

import (
	"fmt"
	"time"
)

// UnitKey identifies one rearing unit: a house (pabellón) within a sector
// for a given rearing cycle.
type UnitKey struct {
	SectorCode string `json:"sector_code"`
	Cycle      int    `json:"cycle"`
	House      int    `json:"house"`
}

func (k UnitKey) String() string {
	return fmt.Sprintf("%s/crianza-%d/pabellon-%d", k.SectorCode, k.Cycle, k.House)
}

// SectorKey identifies the ledgers shared by every house of a sector cycle.
type SectorKey struct {
	SectorCode string
	Cycle      int
}

func (k SectorKey) String() string {
	return fmt.Sprintf("%s/crianza-%d", k.SectorCode, k.Cycle)
}

func (k UnitKey) Sector() SectorKey {
	return SectorKey{SectorCode: k.SectorCode, Cycle: k.Cycle}
}

// RearingUnit is the immutable reference data for one unit, assembled from
// the placement ledger and the registry masters at the start of a run.
type RearingUnit struct {
	Key                UnitKey   `json:"key"`
	SectorName         string    `json:"sector_name"`
	Sex                string    `json:"sex"`
	ConstructionType   string    `json:"construction_type"`
	UsableAreaM2       float64   `json:"usable_area_m2"`
	GeographicZone     string    `json:"geographic_zone"`
	InitialCount       int       `json:"initial_count"`
	PlacementStart     time.Time `json:"placement_start"`
	PlacementEnd       time.Time `json:"placement_end"`
	AvgPlacementWeight float64   `json:"avg_placement_weight"`
	DensityPerM2       float64   `json:"density_per_m2"`
	MonthLoaded        int       `json:"month_loaded"`
	CurrentAgeDays     int       `json:"current_age_days"`
}

// MortalityEvent is one row of the mortality ledger. Multiple events may
// share a date; they are aggregated by summation before ledger construction.
type MortalityEvent struct {
	Key     UnitKey
	Date    time.Time
	Count   int
	AgeDays float64
}

// FeedDelivery is one row of the feed-delivery ledger (guías de alimento).
type FeedDelivery struct {
	Key       UnitKey
	Date      time.Time
	Kilograms float64
}

// StockRecord is the derived daily population stock for one ledger date.
// Stock is non-increasing over time within a unit and never negative.
type StockRecord struct {
	Key       UnitKey   `json:"key"`
	Date      time.Time `json:"date"`
	AgeDays   int       `json:"age_days"`
	Mortality int       `json:"mortality"`
	Stock     int       `json:"stock"`
}

// FeedAccumulationRecord merges the feed ledger onto a stock date.
// CumulativeKg is non-decreasing; PerCapitaKg is undefined at zero stock.
type FeedAccumulationRecord struct {
	Key          UnitKey   `json:"key"`
	Date         time.Time `json:"date"`
	AgeDays      int       `json:"age_days"`
	DeliveredKg  float64   `json:"delivered_kg"`
	CumulativeKg float64   `json:"cumulative_kg"`
	PerCapitaKg  float64   `json:"percapita_kg"`
}

// ProjectionSource tags which path produced a projection row. A unit's
// projection is entirely formula-derived or entirely telemetry-derived for a
// run, never a per-date mix.
type ProjectionSource string

const (
	SourceFormula  ProjectionSource = "formula"
	SourceOverride ProjectionSource = "override"
)

// ProjectionRecord is one future day of a unit's projection. WeightGrams is
// always expressed in grams; telemetry sources deliver kilograms and are
// converted on ingestion.
type ProjectionRecord struct {
	Key             UnitKey          `json:"key"`
	Sex             string           `json:"sex"`
	Date            time.Time        `json:"date"`
	AgeDays         int              `json:"age_days"`
	FeedCompliance  float64          `json:"feed_compliance"`
	FeedStandard    float64          `json:"feed_standard"`
	FeedConsumption float64          `json:"feed_consumption"`
	WeightGrams     float64          `json:"weight_grams"`
	Source          ProjectionSource `json:"source"`
}

// TelemetryRow is one row of a silo-telemetry projection file as read from
// disk. Weight arrives in kilograms; the override resolver converts to grams
// when it admits the row into the canonical projection.
type TelemetryRow struct {
	House          int
	Date           time.Time
	AgeDays        int
	FeedCompliance float64
	FeedStandard   float64
	FeedProjection float64
	WeightKg       float64
}

// Pipeline stages, used to attribute skips in the run report.
const (
	StagePreparation = "preparation"
	StageLedger      = "ledger"
	StageFeed        = "feed"
	StageProjection  = "projection"
	StageOverride    = "override"
)

// SkipReason records a unit that was dropped from the run and why. Skips are
// always local to the unit; they never abort the batch.
type SkipReason struct {
	Key    UnitKey `json:"key"`
	Stage  string  `json:"stage"`
	Reason string  `json:"reason"`
}

// UnitResult is the per-unit output of the pipeline: either the unit's rows
// or the reason it was skipped.
type UnitResult struct {
	Unit            RearingUnit
	Stock           []StockRecord
	Feed            []FeedAccumulationRecord
	Projection      []ProjectionRecord
	GainGramsPerDay float64
	GainProvenance  string
	DroppedFeed     int
	Skip            *SkipReason
}

func (r UnitResult) Skipped() bool {
	return r.Skip != nil
}
