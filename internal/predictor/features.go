package predictor

import (
	"math"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

// Density buckets with fixed breakpoints (0,13], (13,15], (15,20], (20,50].
const (
	DensityLow      = "Baja"
	DensityMedium   = "Media"
	DensityHigh     = "Alta"
	DensityVeryHigh = "Muy_Alta"
)

// Features is the derived feature vector handed to the estimator alongside
// the validated base fields. Derivation is pure and deterministic.
type Features struct {
	MonthLoaded      int     `json:"mes_carga"`
	Sex              string  `json:"sexo"`
	PerCapitaFeedKg  float64 `json:"kilos_recibidos_percapita"`
	ConstructionType string  `json:"tipo_construccion"`
	DensityPerM2     float64 `json:"densidad_pollos_m2"`
	MonthSin         float64 `json:"mes_sin"`
	MonthCos         float64 `json:"mes_cos"`
	FeedPerDensity   float64 `json:"alimento_por_densidad"`
	DensityBucket    string  `json:"densidad_categoria"`
}

// DensityBucket maps a density to its categorical bucket. A value outside
// every bucket is an error, not a silent default.
func DensityBucketFor(density float64) (string, error) {
	switch {
	case density > 0 && density <= 13:
		return DensityLow, nil
	case density > 13 && density <= 15:
		return DensityMedium, nil
	case density > 15 && density <= 20:
		return DensityHigh, nil
	case density > 20 && density <= 50:
		return DensityVeryHigh, nil
	default:
		return "", &types.OutOfRangeError{Field: "density_per_m2", Value: density, Min: 0, Max: 50}
	}
}

// DeriveFeatures computes the feature vector from a validated request:
// cyclical month encoding, feed-to-density ratio and the density bucket.
func DeriveFeatures(req PredictionRequest) (Features, error) {
	bucket, err := DensityBucketFor(req.DensityPerM2)
	if err != nil {
		return Features{}, err
	}

	angle := 2 * math.Pi * float64(req.MonthLoaded) / 12

	return Features{
		MonthLoaded:      req.MonthLoaded,
		Sex:              req.Sex,
		PerCapitaFeedKg:  req.PerCapitaFeedKg,
		ConstructionType: req.ConstructionType,
		DensityPerM2:     req.DensityPerM2,
		MonthSin:         math.Sin(angle),
		MonthCos:         math.Cos(angle),
		FeedPerDensity:   req.PerCapitaFeedKg / req.DensityPerM2,
		DensityBucket:    bucket,
	}, nil
}
