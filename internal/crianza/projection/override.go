package projection

import (
	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

const kgToGrams = 1000.0

// ResolveOverride applies the silo-telemetry precedence rule for one unit:
// if any telemetry rows exist for the unit's house, they replace the formula
// projection wholesale (weight converted kg to g, source tagged override).
// Otherwise the formula rows stand. There is no per-date merging; a unit's
// projection comes entirely from one source.
func ResolveOverride(unit types.RearingUnit, formula []types.ProjectionRecord, telemetry []types.TelemetryRow) []types.ProjectionRecord {
	var matched []types.TelemetryRow
	for _, row := range telemetry {
		if row.House == unit.Key.House {
			matched = append(matched, row)
		}
	}

	if len(matched) == 0 {
		return formula
	}

	records := make([]types.ProjectionRecord, 0, len(matched))
	for _, row := range matched {
		records = append(records, types.ProjectionRecord{
			Key:             unit.Key,
			Sex:             unit.Sex,
			Date:            row.Date,
			AgeDays:         row.AgeDays,
			FeedCompliance:  row.FeedCompliance,
			FeedStandard:    row.FeedStandard,
			FeedConsumption: row.FeedProjection,
			WeightGrams:     row.WeightKg * kgToGrams,
			Source:          types.SourceOverride,
		})
	}
	return records
}
