package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

// Estimator is the trained regression model. Its training and selection
// happen outside this system; the pipeline only invokes it.
type Estimator interface {
	Predict(f Features) (float64, error)
	Name() string
}

// linearArtifact is the on-disk form of an exported linear model: an
// intercept, a weight per numeric feature and one-hot weights per
// categorical level.
type linearArtifact struct {
	Name        string                        `json:"name"`
	Version     string                        `json:"version"`
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// LinearEstimator evaluates an exported linear model artifact.
type LinearEstimator struct {
	artifact linearArtifact
}

// LoadLinearEstimator reads a model artifact from disk. A missing or
// unreadable artifact is an EstimatorUnavailableError: the caller fails the
// projection stage only, never the whole run.
func LoadLinearEstimator(path string) (*LinearEstimator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.EstimatorUnavailableError{Reason: fmt.Sprintf("model artifact %s: %v", path, err)}
	}

	var artifact linearArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, &types.EstimatorUnavailableError{Reason: fmt.Sprintf("model artifact %s: %v", path, err)}
	}
	if artifact.Name == "" {
		return nil, &types.EstimatorUnavailableError{Reason: fmt.Sprintf("model artifact %s: missing model name", path)}
	}

	return &LinearEstimator{artifact: artifact}, nil
}

func (e *LinearEstimator) Name() string {
	if e.artifact.Version == "" {
		return e.artifact.Name
	}
	return e.artifact.Name + "@" + e.artifact.Version
}

func (e *LinearEstimator) Predict(f Features) (float64, error) {
	numeric := map[string]float64{
		"mes_carga":                 float64(f.MonthLoaded),
		"mes_sin":                   f.MonthSin,
		"mes_cos":                   f.MonthCos,
		"kilos_recibidos_percapita": f.PerCapitaFeedKg,
		"densidad_pollos_m2":        f.DensityPerM2,
		"alimento_por_densidad":     f.FeedPerDensity,
	}
	categorical := map[string]string{
		"sexo":               f.Sex,
		"tipo_construccion":  f.ConstructionType,
		"densidad_categoria": f.DensityBucket,
	}

	estimate := e.artifact.Intercept
	for name, weight := range e.artifact.Numeric {
		value, ok := numeric[name]
		if !ok {
			return 0, fmt.Errorf("model artifact references unknown numeric feature %q", name)
		}
		estimate += weight * value
	}
	for field, levels := range e.artifact.Categorical {
		value, ok := categorical[field]
		if !ok {
			return 0, fmt.Errorf("model artifact references unknown categorical feature %q", field)
		}
		estimate += levels[value]
	}

	return estimate, nil
}
