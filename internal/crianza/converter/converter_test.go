package converter

import (
	"strings"
	"testing"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sectorKey = types.SectorKey{SectorCode: "alhue", Cycle: 167}

func frameFromCSV(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(csv), dataframe.WithDelimiter(';'))
	require.NoError(t, df.Error())
	return df
}

func TestPlacements(t *testing.T) {
	df := frameFromCSV(t,
		"Pabellón;Cantidad Total;Fecha Guía Inicio;Fecha Guía Fin;Peso Promedio;Sexo\n"+
			"3;10000;24/08/2025;26/08/2025;40,5;MACHO\n"+
			"4;9500;24/08/2025;27/08/2025;39;HEMBRA\n")

	units := Placements(df, sectorKey, "ALHUE")
	require.Len(t, units, 2)

	u := units[0]
	assert.Equal(t, types.UnitKey{SectorCode: "alhue", Cycle: 167, House: 3}, u.Key)
	assert.Equal(t, "ALHUE", u.SectorName)
	assert.Equal(t, "MACHO", u.Sex)
	assert.Equal(t, 10000, u.InitialCount)
	assert.Equal(t, time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC), u.PlacementStart)
	assert.Equal(t, time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC), u.PlacementEnd)
	assert.InDelta(t, 40.5, u.AvgPlacementWeight, 1e-9)
	assert.Equal(t, 8, u.MonthLoaded)
}

func TestMortalityEvents(t *testing.T) {
	df := frameFromCSV(t,
		"Pabellón;Fecha Movimiento;Cantidad;Edad\n"+
			"3;20/09/2025;50;28\n")

	events := MortalityEvents(df, sectorKey)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, 3, e.Key.House)
	assert.Equal(t, time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, 50, e.Count)
	assert.InDelta(t, 28.0, e.AgeDays, 1e-9)
}

func TestFeedDeliveries(t *testing.T) {
	df := frameFromCSV(t,
		"Pabellón;F.Guía;Kilos\n"+
			"3;21/09/2025;12500,75\n")

	deliveries := FeedDeliveries(df, sectorKey)
	require.Len(t, deliveries, 1)
	assert.InDelta(t, 12500.75, deliveries[0].Kilograms, 1e-9)
}

func TestTelemetryRows(t *testing.T) {
	df := frameFromCSV(t,
		"nro_pabellon;fecha;edad;cumplimiento_consumo;consumo_estandar_edad;proyeccion_consumo;proyeccion_peso\n"+
			"3;2025-10-01;36;0.95;180;175;2.5\n")

	rows := TelemetryRows(df)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 3, r.House)
	assert.Equal(t, 36, r.AgeDays)
	assert.InDelta(t, 0.95, r.FeedCompliance, 1e-9)
	assert.InDelta(t, 2.5, r.WeightKg, 1e-9)
}

func TestMissingColumnsDegradeToZeroValues(t *testing.T) {
	df := frameFromCSV(t, "Pabellón;Cantidad\n3;10\n")

	e := DfRowToMortalityEvent(df, 0, sectorKey)
	assert.Equal(t, 3, e.Key.House)
	assert.Zero(t, e.Count)
	assert.True(t, e.Date.IsZero())
}
