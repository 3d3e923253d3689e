// Package report summarizes a batch run for logging and the run-history
// store.
package report

import (
	"fmt"
	"sort"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"gonum.org/v1/gonum/stat"
)

// GainStats summarizes the daily-gain estimates produced during a run.
type GainStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// RunReport aggregates the outcome of one batch run.
type RunReport struct {
	UnitsTotal      int                 `json:"units_total"`
	UnitsProjected  int                 `json:"units_projected"`
	UnitsOverridden int                 `json:"units_overridden"`
	UnitsSkipped    int                 `json:"units_skipped"`
	ProjectionRows  int                 `json:"projection_rows"`
	DroppedFeedRows int                 `json:"dropped_feed_rows"`
	Skips           []types.SkipReason  `json:"skips"`
	SkipsByStage    map[string]int      `json:"skips_by_stage"`
	Gains           GainStats           `json:"gains"`
}

// Build condenses per-unit results into a run report.
func Build(results []types.UnitResult) RunReport {
	rep := RunReport{
		UnitsTotal:   len(results),
		SkipsByStage: make(map[string]int),
	}

	var gains []float64
	for _, res := range results {
		if res.Skipped() {
			rep.UnitsSkipped++
			rep.Skips = append(rep.Skips, *res.Skip)
			rep.SkipsByStage[res.Skip.Stage]++
			continue
		}
		rep.UnitsProjected++
		rep.ProjectionRows += len(res.Projection)
		rep.DroppedFeedRows += res.DroppedFeed
		if len(res.Projection) > 0 && res.Projection[0].Source == types.SourceOverride {
			rep.UnitsOverridden++
		}
		if res.GainGramsPerDay > 0 {
			gains = append(gains, res.GainGramsPerDay)
		}
	}

	rep.Gains = summarizeGains(gains)
	return rep
}

func summarizeGains(gains []float64) GainStats {
	if len(gains) == 0 {
		return GainStats{}
	}

	sorted := make([]float64, len(gains))
	copy(sorted, gains)
	sort.Float64s(sorted)

	gs := GainStats{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		gs.StdDev = stat.StdDev(sorted, nil)
	}
	return gs
}

// Summary renders a one-line digest for the completion log.
func (r RunReport) Summary() string {
	return fmt.Sprintf(
		"units=%d projected=%d overridden=%d skipped=%d rows=%d dropped_feed=%d gain_mean=%.1fg gain_sd=%.1fg",
		r.UnitsTotal, r.UnitsProjected, r.UnitsOverridden, r.UnitsSkipped,
		r.ProjectionRows, r.DroppedFeedRows, r.Gains.Mean, r.Gains.StdDev,
	)
}

// Succeeded reports whether at least one unit produced projection rows.
func (r RunReport) Succeeded() bool {
	return r.UnitsProjected > 0
}
