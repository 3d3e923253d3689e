package crianza

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/converter"
	"github.com/agrodata/crianza_projection/internal/crianza/files"
	"github.com/agrodata/crianza_projection/internal/crianza/keys"
	"github.com/agrodata/crianza_projection/internal/crianza/ledger"
	"github.com/agrodata/crianza_projection/internal/crianza/projection"
	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/logger"
	"github.com/agrodata/crianza_projection/internal/predictor"
	"github.com/agrodata/crianza_projection/internal/registry"
)

// Config is the per-run configuration of the batch pipeline.
type Config struct {
	DataDir     string
	OverrideDir string

	// Sector codes excluded from the run, in canonical form.
	ExcludedSectors []string

	MaxConcurrency int
	Today          time.Time

	Projection projection.Config

	// Registry fallbacks applied before validation.
	DefaultConstruction string
	DefaultDensity      float64
}

func DefaultConfig() Config {
	return Config{
		MaxConcurrency:      4,
		Today:               time.Now(),
		Projection:          projection.DefaultConfig(),
		DefaultConstruction: "Black Out",
		DefaultDensity:      14.0,
	}
}

// unitJob carries everything one worker needs to project one unit.
type unitJob struct {
	unit      types.RearingUnit
	mortality []types.MortalityEvent
	feed      []types.FeedDelivery
	telemetry []types.TelemetryRow
}

// Orchestrator runs the full pipeline for a set of sector cycles: ledgers
// in, projection rows out, one result per unit.
type Orchestrator struct {
	cfg       Config
	predictor *predictor.Service
	registry  *registry.Snapshot
	appLogger *logger.Logger
}

func NewOrchestrator(cfg Config, svc *predictor.Service, snap *registry.Snapshot, appLogger *logger.Logger) *Orchestrator {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}
	if snap == nil {
		snap = registry.NewSnapshot(nil, nil)
	}
	return &Orchestrator{cfg: cfg, predictor: svc, registry: snap, appLogger: appLogger}
}

// Run processes every sector cycle and returns one result per rearing unit,
// in no particular order. Unit and sector failures become skips; only a
// cancelled context aborts the run.
func (o *Orchestrator) Run(ctx context.Context, sectors []types.SectorKey) ([]types.UnitResult, error) {
	const component = "Orchestrator"

	excluded := make(map[string]bool, len(o.cfg.ExcludedSectors))
	for _, code := range o.cfg.ExcludedSectors {
		excluded[keys.Normalize(code)] = true
	}

	var jobs []unitJob
	var results []types.UnitResult

	for _, key := range sectors {
		if excluded[keys.Normalize(key.SectorCode)] {
			o.appLogger.Info(component, "Sector excluded from run: sector=%s", key)
			continue
		}

		sectorJobs, sectorSkips, err := o.loadSector(key)
		if err != nil {
			o.appLogger.Warn(component, "Sector sources unavailable: sector=%s err=%v", key, err)
			results = append(results, types.UnitResult{
				Unit: types.RearingUnit{Key: types.UnitKey{SectorCode: key.SectorCode, Cycle: key.Cycle}},
				Skip: &types.SkipReason{
					Key:    types.UnitKey{SectorCode: key.SectorCode, Cycle: key.Cycle},
					Stage:  types.StagePreparation,
					Reason: err.Error(),
				},
			})
			continue
		}
		jobs = append(jobs, sectorJobs...)
		results = append(results, sectorSkips...)
	}

	o.appLogger.Info(component, "Starting unit fan-out: units=%d concurrency=%d", len(jobs), o.cfg.MaxConcurrency)

	jobChan := make(chan unitJob, len(jobs))
	resultChan := make(chan types.UnitResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < o.cfg.MaxConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- o.processUnit(job)
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()
	close(resultChan)

	for res := range resultChan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	o.appLogger.Info(component, "Run complete: units=%d", len(results))
	return results, nil
}

// loadSector reads the three ledger exports and the optional telemetry
// override for one sector cycle and builds one job per placed house.
func (o *Orchestrator) loadSector(key types.SectorKey) ([]unitJob, []types.UnitResult, error) {
	const component = "SectorLoader"

	sources := files.BuildFilesForSector(o.cfg.DataDir, key)

	placementsDf, err := sources.OpenLedger(files.CargadoPabellones)
	if err != nil {
		return nil, nil, err
	}
	mortalityDf, err := sources.OpenLedger(files.Mortalidad)
	if err != nil {
		return nil, nil, err
	}
	feedDf, err := sources.OpenLedger(files.GuiasAlimento)
	if err != nil {
		return nil, nil, err
	}

	units := converter.Placements(placementsDf, key, key.SectorCode)
	mortality := converter.MortalityEvents(mortalityDf, key)
	feed := converter.FeedDeliveries(feedDf, key)

	telemetry := o.loadTelemetry(key)

	o.appLogger.Debug(component, "Sector loaded: sector=%s units=%d mortality=%d feed=%d telemetry=%d",
		key, len(units), len(mortality), len(feed), len(telemetry))

	var jobs []unitJob
	var skips []types.UnitResult
	for _, unit := range units {
		enriched, skip := o.enrichUnit(unit)
		if skip != nil {
			skips = append(skips, types.UnitResult{Unit: unit, Skip: skip})
			continue
		}
		jobs = append(jobs, unitJob{unit: enriched, mortality: mortality, feed: feed, telemetry: telemetry})
	}
	return jobs, skips, nil
}

func (o *Orchestrator) loadTelemetry(key types.SectorKey) []types.TelemetryRow {
	const component = "SectorLoader"

	path := files.OverridePath(o.cfg.OverrideDir, key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	df, err := files.OpenFileAndDecode(path)
	if err != nil {
		o.appLogger.Warn(component, "Telemetry override unreadable, using formula path: sector=%s err=%v", key, err)
		return nil
	}
	return converter.TelemetryRows(df)
}

// enrichUnit joins registry masters onto a placement row and applies the
// documented fallbacks: missing construction type becomes the default, and
// a density that cannot be derived becomes the default density.
func (o *Orchestrator) enrichUnit(unit types.RearingUnit) (types.RearingUnit, *types.SkipReason) {
	const component = "Enrichment"

	if unit.InitialCount <= 0 {
		return unit, &types.SkipReason{
			Key:    unit.Key,
			Stage:  types.StagePreparation,
			Reason: "placement has no initial count",
		}
	}
	if unit.PlacementEnd.IsZero() {
		return unit, &types.SkipReason{
			Key:    unit.Key,
			Stage:  types.StagePreparation,
			Reason: "placement has no end date",
		}
	}

	if master, ok := o.registry.House(unit.Key.SectorCode, unit.Key.House); ok {
		unit.ConstructionType = master.ConstructionType
		unit.UsableAreaM2 = master.UsableAreaM2
	}
	if sector, ok := o.registry.Sector(unit.Key.SectorCode); ok {
		unit.GeographicZone = sector.GeographicZone
		if sector.SectorName != "" {
			unit.SectorName = sector.SectorName
		}
	}

	if unit.ConstructionType == "" {
		o.appLogger.Debug(component, "Construction type missing, defaulting: unit=%s default=%s", unit.Key, o.cfg.DefaultConstruction)
		unit.ConstructionType = o.cfg.DefaultConstruction
	}

	if unit.UsableAreaM2 > 0 {
		unit.DensityPerM2 = float64(unit.InitialCount) / unit.UsableAreaM2
	}
	if unit.DensityPerM2 <= 0 {
		o.appLogger.Debug(component, "Density underivable, defaulting: unit=%s default=%.1f", unit.Key, o.cfg.DefaultDensity)
		unit.DensityPerM2 = o.cfg.DefaultDensity
	}

	unit.CurrentAgeDays = ageAt(unit.PlacementEnd, o.cfg.Today)
	return unit, nil
}

// ageAt is the unit age in whole days at the run date, counting the
// placement end date as day zero.
func ageAt(placementEnd, today time.Time) int {
	days := today.Sub(placementEnd).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(math.Floor(days))
}

// processUnit runs the per-unit pipeline: stock ledger, feed accumulation,
// eligibility, gain prediction, projection, telemetry override.
func (o *Orchestrator) processUnit(job unitJob) types.UnitResult {
	const component = "UnitPipeline"
	unit := job.unit

	stock, err := ledger.BuildStockLedger(unit, job.mortality)
	if err != nil {
		return skipResult(unit, types.StageLedger, err.Error())
	}
	if len(stock) == 0 {
		return skipResult(unit, types.StageLedger, "no mortality rows for unit")
	}

	feed, droppedFeed, err := ledger.AccumulateFeed(stock, job.feed)
	if err != nil {
		return skipResult(unit, types.StageFeed, err.Error())
	}

	if !o.cfg.Projection.Eligible(unit) {
		return skipResult(unit, types.StageProjection,
			fmt.Sprintf("age %d outside projection window", unit.CurrentAgeDays))
	}

	perCapita, ok := perCapitaAtCutoff(feed, o.cfg.Projection.CutoffAgeDays)
	if !ok {
		return skipResult(unit, types.StageProjection, "no feed observation at cutoff age")
	}

	prediction, err := o.predictor.Predict(predictor.PredictionRequest{
		MonthLoaded:      unit.MonthLoaded,
		Sex:              unit.Sex,
		PerCapitaFeedKg:  perCapita,
		ConstructionType: unit.ConstructionType,
		DensityPerM2:     unit.DensityPerM2,
	})
	if err != nil {
		o.appLogger.Warn(component, "Gain prediction failed: unit=%s err=%v", unit.Key, err)
		return skipResult(unit, types.StageProjection, err.Error())
	}

	formula := projection.Generate(unit, prediction.EstimatedDailyGainGrams, o.cfg.Today, o.cfg.Projection)
	resolved := projection.ResolveOverride(unit, formula, job.telemetry)

	if len(resolved) > 0 && resolved[0].Source == types.SourceOverride {
		o.appLogger.Info(component, "Telemetry projection replaces formula: unit=%s rows=%d", unit.Key, len(resolved))
	}

	return types.UnitResult{
		Unit:            unit,
		Stock:           stock,
		Feed:            feed,
		Projection:      resolved,
		GainGramsPerDay: prediction.EstimatedDailyGainGrams,
		GainProvenance:  prediction.Provenance,
		DroppedFeed:     droppedFeed,
	}
}

// perCapitaAtCutoff finds the per-capita intake at the cutoff age, falling
// back to the closest earlier observation when the ledger skips that day.
func perCapitaAtCutoff(feed []types.FeedAccumulationRecord, cutoffAge int) (float64, bool) {
	if v, ok := ledger.PerCapitaAtAge(feed, cutoffAge); ok {
		return v, true
	}
	best := -1
	value := 0.0
	for _, r := range feed {
		if r.AgeDays < cutoffAge && r.AgeDays > best {
			best = r.AgeDays
			value = r.PerCapitaKg
		}
	}
	if best < 0 {
		return 0, false
	}
	return value, true
}

func skipResult(unit types.RearingUnit, stage, reason string) types.UnitResult {
	return types.UnitResult{
		Unit: unit,
		Skip: &types.SkipReason{Key: unit.Key, Stage: stage, Reason: reason},
	}
}
