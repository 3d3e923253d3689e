// Package export assembles projection output in the two shapes the
// planning side consumes: a long frame with one row per (unit, date)
// and a wide frame with one row per metric and one column per date.
package export

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	MetricAge    = "Edad"
	MetricFeed   = "Consumo Alimento"
	MetricWeight = "Proyeccion Peso"

	stageLabel = "Broiler"

	dateLayout = "2006-01-02"
)

// BuildLongFrame flattens projection records from every unit into a single
// long-format dataframe, one row per (unit, date).
func BuildLongFrame(results []types.UnitResult) dataframe.DataFrame {
	var (
		sectors  []string
		cycles   []int
		houses   []int
		sexes    []string
		dates    []string
		ages     []int
		compl    []float64
		standard []float64
		consumo  []float64
		peso     []float64
		sources  []string
	)

	for _, res := range results {
		for _, rec := range res.Projection {
			sectors = append(sectors, rec.Key.SectorCode)
			cycles = append(cycles, rec.Key.Cycle)
			houses = append(houses, rec.Key.House)
			sexes = append(sexes, rec.Sex)
			dates = append(dates, rec.Date.Format(dateLayout))
			ages = append(ages, rec.AgeDays)
			compl = append(compl, rec.FeedCompliance)
			standard = append(standard, rec.FeedStandard)
			consumo = append(consumo, rec.FeedConsumption)
			peso = append(peso, rec.WeightGrams)
			sources = append(sources, string(rec.Source))
		}
	}

	if len(dates) == 0 {
		return dataframe.New()
	}

	return dataframe.New(
		series.New(sectors, series.String, "nombre_sector_code"),
		series.New(cycles, series.Int, "nro_crianza"),
		series.New(houses, series.Int, "nro_pabellon"),
		series.New(sexes, series.String, "sexo"),
		series.New(dates, series.String, "fecha"),
		series.New(ages, series.Int, "edad"),
		series.New(compl, series.Float, "cumplimiento_consumo"),
		series.New(standard, series.Float, "consumo_estandar_edad"),
		series.New(consumo, series.Float, "proyeccion_consumo"),
		series.New(peso, series.Float, "proyeccion_peso"),
		series.New(sources, series.String, "origen"),
	)
}

// BuildWideUnitFrame pivots one unit's records into three metric rows
// (Edad, Consumo Alimento, Proyeccion Peso) with a column per date.
// Weight goes back to kilograms for the report. Returns an empty frame
// when the unit has no records.
func BuildWideUnitFrame(unit types.RearingUnit, records []types.ProjectionRecord) dataframe.DataFrame {
	if len(records) == 0 {
		return dataframe.New()
	}

	sorted := make([]types.ProjectionRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	cols := []series.Series{
		series.New([]string{MetricAge, MetricFeed, MetricWeight}, series.String, "ratio"),
		series.New([]int{unit.Key.House, unit.Key.House, unit.Key.House}, series.Int, "pabellon"),
		series.New([]string{stageLabel, stageLabel, stageLabel}, series.String, "etapa"),
		series.New([]string{unit.GeographicZone, unit.GeographicZone, unit.GeographicZone}, series.String, "subzona"),
		series.New([]string{unit.Key.SectorCode, unit.Key.SectorCode, unit.Key.SectorCode}, series.String, "grupo"),
	}

	seen := make(map[string]bool, len(sorted))
	for _, rec := range sorted {
		label := rec.Date.Format(dateLayout)
		if seen[label] {
			continue
		}
		seen[label] = true
		cols = append(cols, series.New(
			[]float64{float64(rec.AgeDays), rec.FeedConsumption, rec.WeightGrams / 1000.0},
			series.Float, label,
		))
	}

	return dataframe.New(cols...)
}

// BuildWideFrame pivots every unit and stacks the blocks. Date columns the
// units do not share come out as NaN cells, which WriteCSV leaves visibly
// absent rather than zero.
func BuildWideFrame(results []types.UnitResult) dataframe.DataFrame {
	combined := dataframe.New()
	for _, res := range results {
		if res.Skipped() || len(res.Projection) == 0 {
			continue
		}
		block := BuildWideUnitFrame(res.Unit, res.Projection)
		if block.Nrow() == 0 {
			continue
		}
		if combined.Nrow() == 0 {
			combined = block
		} else {
			combined = mergeBlocks(combined, block)
		}
	}
	return combined
}

// mergeBlocks stacks two wide blocks on the union of their columns,
// padding the side that lacks a date column with NaN.
func mergeBlocks(a, b dataframe.DataFrame) dataframe.DataFrame {
	union := a.Names()
	have := make(map[string]bool, len(union))
	for _, name := range union {
		have[name] = true
	}
	for _, name := range b.Names() {
		if !have[name] {
			union = append(union, name)
			have[name] = true
		}
	}

	a = padColumns(a, union)
	b = padColumns(b, union)
	return a.RBind(b.Select(a.Names()))
}

func padColumns(df dataframe.DataFrame, union []string) dataframe.DataFrame {
	have := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, name := range union {
		if have[name] {
			continue
		}
		blanks := make([]float64, df.Nrow())
		for i := range blanks {
			blanks[i] = math.NaN()
		}
		df = df.Mutate(series.New(blanks, series.Float, name))
	}
	return df
}

// WriteCSV persists a dataframe to disk.
func WriteCSV(df dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// OutputPaths returns the long and wide export file names for a run date.
func OutputPaths(outDir string, runDate time.Time) (longPath, widePath string) {
	stamp := runDate.Format("20060102")
	longPath = fmt.Sprintf("%s/proyeccion_pollos_expandido_%s.csv", outDir, stamp)
	widePath = fmt.Sprintf("%s/proyeccion_pollos_%s.csv", outDir, stamp)
	return longPath, widePath
}
