// Package projection extrapolates future age/weight/feed rows for rearing
// units near slaughter age and resolves silo-telemetry overrides against the
// formula projection.
//
// The formula path assumes a constant average daily gain from day zero
// (weight = gain * age). That linearity is a deliberate modeling choice
// inherited from the production pipeline, not an approximation bug; a
// nonlinear curve can replace it behind the same Estimator contract.
package projection

import (
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

// Config holds the projection parameters the observed deployments disagree
// on, so they stay configurable rather than baked in.
type Config struct {
	// Units are eligible while their observed age is inside
	// [MinAgeDays, MaxAgeDays]; outside the window projections are not
	// meaningful and the unit is excluded entirely.
	MinAgeDays int
	MaxAgeDays int
	// HorizonAgeDays is the last projected age.
	HorizonAgeDays int
	// CutoffAgeDays is the age whose cumulative per-capita feed feeds the
	// gain prediction.
	CutoffAgeDays int
}

func DefaultConfig() Config {
	return Config{
		MinAgeDays:     32,
		MaxAgeDays:     41,
		HorizonAgeDays: 50,
		CutoffAgeDays:  30,
	}
}

// Eligible reports whether a unit's observed age falls inside the projection
// window.
func (c Config) Eligible(unit types.RearingUnit) bool {
	return unit.CurrentAgeDays >= c.MinAgeDays && unit.CurrentAgeDays <= c.MaxAgeDays
}

// Generate produces the formula projection for one eligible unit: one row
// per future age from current+1 up to the horizon, dated by successive days
// after today. Feed columns are zero on formula rows; only the telemetry
// path carries consumption projections.
func Generate(unit types.RearingUnit, gainGramsPerDay float64, today time.Time, cfg Config) []types.ProjectionRecord {
	if unit.CurrentAgeDays >= cfg.HorizonAgeDays {
		return nil
	}

	records := make([]types.ProjectionRecord, 0, cfg.HorizonAgeDays-unit.CurrentAgeDays)
	for step, age := 1, unit.CurrentAgeDays+1; age <= cfg.HorizonAgeDays; step, age = step+1, age+1 {
		records = append(records, types.ProjectionRecord{
			Key:         unit.Key,
			Sex:         unit.Sex,
			Date:        today.AddDate(0, 0, step),
			AgeDays:     age,
			WeightGrams: gainGramsPerDay * float64(age),
			Source:      types.SourceFormula,
		})
	}
	return records
}
