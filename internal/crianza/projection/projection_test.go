package projection

import (
	"testing"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitKey = types.UnitKey{SectorCode: "alhue", Cycle: 167, House: 4}

func unitAtAge(age int) types.RearingUnit {
	return types.RearingUnit{Key: unitKey, Sex: "HEMBRA", CurrentAgeDays: age}
}

func TestEligibilityWindow(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Eligible(unitAtAge(31)))
	assert.True(t, cfg.Eligible(unitAtAge(32)))
	assert.True(t, cfg.Eligible(unitAtAge(35)))
	assert.True(t, cfg.Eligible(unitAtAge(41)))
	assert.False(t, cfg.Eligible(unitAtAge(42)))
	assert.False(t, cfg.Eligible(unitAtAge(45)))
}

func TestGenerateProjectsToHorizon(t *testing.T) {
	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	records := Generate(unitAtAge(35), 60.0, today, DefaultConfig())
	require.Len(t, records, 15) // ages 36..50 inclusive

	assert.Equal(t, 36, records[0].AgeDays)
	assert.Equal(t, today.AddDate(0, 0, 1), records[0].Date)
	assert.Equal(t, 50, records[14].AgeDays)
	assert.Equal(t, today.AddDate(0, 0, 15), records[14].Date)

	for _, r := range records {
		assert.Equal(t, types.SourceFormula, r.Source)
		assert.Equal(t, "HEMBRA", r.Sex)
		assert.Zero(t, r.FeedConsumption)
	}
}

func TestGenerateLinearGainModel(t *testing.T) {
	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	records := Generate(unitAtAge(40), 55.5, today, DefaultConfig())
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.InDelta(t, 55.5*float64(r.AgeDays), r.WeightGrams, 1e-9)
	}
}

func TestGenerateAtHorizonYieldsNothing(t *testing.T) {
	today := time.Now()
	assert.Empty(t, Generate(unitAtAge(50), 60.0, today, DefaultConfig()))
	assert.Empty(t, Generate(unitAtAge(55), 60.0, today, DefaultConfig()))
}

func TestGenerateIsDeterministic(t *testing.T) {
	today := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	a := Generate(unitAtAge(37), 48.0, today, DefaultConfig())
	b := Generate(unitAtAge(37), 48.0, today, DefaultConfig())
	assert.Equal(t, a, b)
}

func telemetryFor(house int, n int) []types.TelemetryRow {
	rows := make([]types.TelemetryRow, n)
	for i := range rows {
		rows[i] = types.TelemetryRow{
			House:          house,
			Date:           time.Date(2025, 8, 21+i, 0, 0, 0, 0, time.UTC),
			AgeDays:        36 + i,
			FeedCompliance: 0.97,
			FeedStandard:   180,
			FeedProjection: 175,
			WeightKg:       2.1 + 0.05*float64(i),
		}
	}
	return rows
}

func TestResolveOverrideReplacesFormulaEntirely(t *testing.T) {
	unit := unitAtAge(35)
	formula := Generate(unit, 60.0, time.Now(), DefaultConfig())
	telemetry := telemetryFor(unit.Key.House, 3)

	resolved := ResolveOverride(unit, formula, telemetry)
	require.Len(t, resolved, 3)

	for _, r := range resolved {
		assert.Equal(t, types.SourceOverride, r.Source)
		assert.Equal(t, unit.Key, r.Key)
	}

	// kg to grams on the way in
	assert.InDelta(t, 2100.0, resolved[0].WeightGrams, 1e-9)
	assert.InDelta(t, 175.0, resolved[0].FeedConsumption, 1e-9)
}

func TestResolveOverrideAbsentTelemetryKeepsFormula(t *testing.T) {
	unit := unitAtAge(35)
	formula := Generate(unit, 60.0, time.Now(), DefaultConfig())

	resolved := ResolveOverride(unit, formula, nil)
	assert.Equal(t, formula, resolved)
}

func TestResolveOverrideFiltersByHouse(t *testing.T) {
	unit := unitAtAge(35)
	formula := Generate(unit, 60.0, time.Now(), DefaultConfig())
	otherHouse := telemetryFor(unit.Key.House+1, 4)

	resolved := ResolveOverride(unit, formula, otherHouse)
	assert.Equal(t, formula, resolved)
}

func TestResolveOverrideExclusivity(t *testing.T) {
	unit := unitAtAge(35)
	formula := Generate(unit, 60.0, time.Now(), DefaultConfig())
	telemetry := telemetryFor(unit.Key.House, 5)

	resolved := ResolveOverride(unit, formula, telemetry)
	for _, r := range resolved {
		assert.NotEqual(t, types.SourceFormula, r.Source)
	}
}
