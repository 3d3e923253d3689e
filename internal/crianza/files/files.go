package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/charmap"
)

// DataType enumerates the per-sector ledger exports the pipeline consumes.
type DataType int

const (
	CargadoPabellones DataType = iota
	Mortalidad
	GuiasAlimento
)

var DataTypeNames = map[DataType]string{
	CargadoPabellones: "Cargado Pabellones",
	Mortalidad:        "Mortalidad",
	GuiasAlimento:     "Guías Alimento",
}

// File naming convention of the ERP exports: <prefix>_<sector>_<cycle>.csv
var dataTypePrefix = map[DataType]string{
	CargadoPabellones: "cargado_pabellones",
	Mortalidad:        "mortalidad",
	GuiasAlimento:     "guias_alimento",
}

// SectorSources holds the resolved ledger paths for one sector cycle.
type SectorSources struct {
	Key   types.SectorKey
	Files map[DataType]string
}

// BuildFilesForSector resolves the expected ledger paths for a sector cycle
// under the data directory. Paths are not checked for existence here; a
// missing ledger surfaces as a MissingSourceError at read time.
func BuildFilesForSector(dataDir string, key types.SectorKey) SectorSources {
	m := make(map[DataType]string, len(dataTypePrefix))

	for dt, prefix := range dataTypePrefix {
		m[dt] = filepath.Join(dataDir, fmt.Sprintf("%s_%s_%d.csv", prefix, key.SectorCode, key.Cycle))
	}
	return SectorSources{Key: key, Files: m}
}

// OverridePath resolves the optional silo-telemetry projection file for a
// sector cycle. Absence of this file is the default path, not an error.
func OverridePath(overrideDir string, key types.SectorKey) string {
	return filepath.Join(overrideDir, fmt.Sprintf("proyecciones_%s_%d_sin_formatear.csv", key.SectorCode, key.Cycle))
}

// OpenFileAndDecode reads one ledger export into a dataframe. The ERP emits
// ISO-8859-1 with semicolon delimiters, the same shape for every ledger type.
func OpenFileAndDecode(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}

	defer file.Close()

	decoded := charmap.ISO8859_1.NewDecoder().Reader(file)
	df := dataframe.ReadCSV(decoded, dataframe.WithDelimiter(';'), dataframe.WithLazyQuotes(true))
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataframe is empty")
	}

	return df, df.Error()
}

// OpenLedger reads one ledger for a sector, translating a missing file into
// the unit-level MissingSourceError the orchestrator reports.
func (s SectorSources) OpenLedger(dt DataType) (dataframe.DataFrame, error) {
	path, ok := s.Files[dt]
	if !ok {
		return dataframe.DataFrame{}, &types.MissingSourceError{Key: s.Key, Source: DataTypeNames[dt]}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return dataframe.DataFrame{}, &types.MissingSourceError{Key: s.Key, Source: DataTypeNames[dt]}
	}
	return OpenFileAndDecode(path)
}
