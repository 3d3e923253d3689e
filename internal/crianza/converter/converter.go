package converter

import (
	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/crianza/utils"
	"github.com/go-gota/gota/dataframe"
)

// Column names follow the ERP export headers verbatim; the converters guard
// every access so a missing column degrades to a zero value instead of a
// panic, the same contract the read path has always had.

func DfRowToPlacement(df dataframe.DataFrame, rowIdx int, key types.SectorKey, sectorName string) types.RearingUnit {
	unitKey := types.UnitKey{
		SectorCode: key.SectorCode,
		Cycle:      key.Cycle,
		House:      utils.GetInt("Pabellón", rowIdx, &df),
	}

	start := utils.ParseDate(utils.GetStr("Fecha Guía Inicio", rowIdx, &df))
	end := utils.ParseDate(utils.GetStr("Fecha Guía Fin", rowIdx, &df))

	return types.RearingUnit{
		Key:                unitKey,
		SectorName:         sectorName,
		Sex:                utils.GetStr("Sexo", rowIdx, &df),
		InitialCount:       utils.GetInt("Cantidad Total", rowIdx, &df),
		PlacementStart:     start,
		PlacementEnd:       end,
		AvgPlacementWeight: utils.ParseFloat(utils.GetStr("Peso Promedio", rowIdx, &df)),
		MonthLoaded:        int(start.Month()),
	}
}

func DfRowToMortalityEvent(df dataframe.DataFrame, rowIdx int, key types.SectorKey) types.MortalityEvent {
	return types.MortalityEvent{
		Key: types.UnitKey{
			SectorCode: key.SectorCode,
			Cycle:      key.Cycle,
			House:      utils.GetInt("Pabellón", rowIdx, &df),
		},
		Date:    utils.ParseDate(utils.GetStr("Fecha Movimiento", rowIdx, &df)),
		Count:   utils.GetInt("Cantidad", rowIdx, &df),
		AgeDays: utils.ParseFloat(utils.GetStr("Edad", rowIdx, &df)),
	}
}

func DfRowToFeedDelivery(df dataframe.DataFrame, rowIdx int, key types.SectorKey) types.FeedDelivery {
	return types.FeedDelivery{
		Key: types.UnitKey{
			SectorCode: key.SectorCode,
			Cycle:      key.Cycle,
			House:      utils.GetInt("Pabellón", rowIdx, &df),
		},
		Date:      utils.ParseDate(utils.GetStr("F.Guía", rowIdx, &df)),
		Kilograms: utils.ParseFloat(utils.GetStr("Kilos", rowIdx, &df)),
	}
}

func DfRowToTelemetryRow(df dataframe.DataFrame, rowIdx int) types.TelemetryRow {
	return types.TelemetryRow{
		House:          utils.GetInt("nro_pabellon", rowIdx, &df),
		Date:           utils.ParseDate(utils.GetStr("fecha", rowIdx, &df)),
		AgeDays:        utils.GetInt("edad", rowIdx, &df),
		FeedCompliance: utils.GetFloat("cumplimiento_consumo", rowIdx, &df),
		FeedStandard:   utils.GetFloat("consumo_estandar_edad", rowIdx, &df),
		FeedProjection: utils.GetFloat("proyeccion_consumo", rowIdx, &df),
		WeightKg:       utils.GetFloat("proyeccion_peso", rowIdx, &df),
	}
}

// MortalityEvents converts a whole mortality ledger frame.
func MortalityEvents(df dataframe.DataFrame, key types.SectorKey) []types.MortalityEvent {
	events := make([]types.MortalityEvent, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		events = append(events, DfRowToMortalityEvent(df, i, key))
	}
	return events
}

// FeedDeliveries converts a whole feed-guide ledger frame.
func FeedDeliveries(df dataframe.DataFrame, key types.SectorKey) []types.FeedDelivery {
	deliveries := make([]types.FeedDelivery, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		deliveries = append(deliveries, DfRowToFeedDelivery(df, i, key))
	}
	return deliveries
}

// Placements converts a placement-summary frame into one RearingUnit per
// house row.
func Placements(df dataframe.DataFrame, key types.SectorKey, sectorName string) []types.RearingUnit {
	units := make([]types.RearingUnit, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		units = append(units, DfRowToPlacement(df, i, key, sectorName))
	}
	return units
}

// TelemetryRows converts a silo-telemetry projection frame.
func TelemetryRows(df dataframe.DataFrame) []types.TelemetryRow {
	rows := make([]types.TelemetryRow, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rows = append(rows, DfRowToTelemetryRow(df, i))
	}
	return rows
}
