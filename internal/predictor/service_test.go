package predictor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEstimator answers with a function of the features, so tests can see
// per-row independence.
type stubEstimator struct{}

func (stubEstimator) Name() string { return "stub@test" }

func (stubEstimator) Predict(f Features) (float64, error) {
	gain := 50.0 + 2.0*f.PerCapitaFeedKg
	if f.Sex == SexMale {
		gain += 5.0
	}
	return gain, nil
}

func newTestService() *Service {
	return NewService(DefaultConfig(), stubEstimator{}, logger.New(logger.LevelError))
}

func TestPredictReturnsProvenance(t *testing.T) {
	svc := newTestService()

	result, err := svc.Predict(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "stub@test", result.Provenance)
	assert.InDelta(t, 62.0, result.EstimatedDailyGainGrams, 1e-9)
	assert.Equal(t, validRequest(), result.Request)
}

func TestPredictRejectsInvalidRequest(t *testing.T) {
	svc := newTestService()

	req := validRequest()
	req.MonthLoaded = 13
	_, err := svc.Predict(req)

	var o *types.OutOfRangeError
	assert.ErrorAs(t, err, &o)
}

func TestPredictWithoutEstimator(t *testing.T) {
	svc := NewService(DefaultConfig(), nil, logger.New(logger.LevelError))

	_, err := svc.Predict(validRequest())

	var unavailable *types.EstimatorUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestPredictManyMatchesSingleInvocation(t *testing.T) {
	svc := newTestService()

	r1 := validRequest()
	r2 := validRequest()
	r2.Sex = SexFemale
	r2.PerCapitaFeedKg = 4.2

	batch := svc.PredictMany([]PredictionRequest{r1, r2})
	require.Len(t, batch, 2)

	single1, err := svc.Predict(r1)
	require.NoError(t, err)
	single2, err := svc.Predict(r2)
	require.NoError(t, err)

	assert.Equal(t, single1, batch[0].Result)
	assert.Equal(t, single2, batch[1].Result)

	// order is preserved for any permutation
	reversed := svc.PredictMany([]PredictionRequest{r2, r1})
	assert.Equal(t, single2, reversed[0].Result)
	assert.Equal(t, single1, reversed[1].Result)
}

func TestPredictManyIsolatesRowFailures(t *testing.T) {
	svc := newTestService()

	bad := validRequest()
	bad.Sex = "OTHER"

	batch := svc.PredictMany([]PredictionRequest{validRequest(), bad, validRequest()})
	require.Len(t, batch, 3)

	assert.NoError(t, batch[0].Err)
	assert.Error(t, batch[1].Err)
	assert.Nil(t, batch[1].Result)
	assert.NoError(t, batch[2].Err)
	assert.Equal(t, batch[0].Result.EstimatedDailyGainGrams, batch[2].Result.EstimatedDailyGainGrams)
}

func TestLoadLinearEstimatorMissingArtifact(t *testing.T) {
	_, err := LoadLinearEstimator(filepath.Join(t.TempDir(), "no_such_model.json"))

	var unavailable *types.EstimatorUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestLinearEstimatorEvaluation(t *testing.T) {
	artifact := map[string]any{
		"name":      "modelo_limpio_final",
		"version":   "3",
		"intercept": 40.0,
		"numeric": map[string]float64{
			"kilos_recibidos_percapita": 4.0,
		},
		"categorical": map[string]map[string]float64{
			"sexo": {SexMale: 6.0, SexFemale: -6.0},
		},
	}
	raw, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	est, err := LoadLinearEstimator(path)
	require.NoError(t, err)
	assert.Equal(t, "modelo_limpio_final@3", est.Name())

	f, err := DeriveFeatures(validRequest())
	require.NoError(t, err)

	got, err := est.Predict(f)
	require.NoError(t, err)
	// 40 + 4*3.5 + 6 (MACHO)
	assert.InDelta(t, 60.0, got, 1e-9)
}
