// Package predictor implements the daily-gain prediction service: request
// validation, deterministic feature derivation and invocation of the trained
// estimator, which is an opaque external artifact to this package.
package predictor

import (
	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

const (
	SexFemale = "HEMBRA"
	SexMale   = "MACHO"

	ConstructionTraditional = "Tradicional"
	ConstructionBlackOut    = "Black Out"
	ConstructionTransversal = "Transversal"
)

var (
	validSexes         = []string{SexFemale, SexMale}
	validConstructions = []string{ConstructionTraditional, ConstructionBlackOut, ConstructionTransversal}
)

// Config carries the validation bounds that differ between deployments. The
// two observed pipelines disagree on the per-capita feed interval (1.0-6.0 in
// the batch flow, 2.0-5.0 in the standalone service), so the bound is
// configuration, never a constant.
type Config struct {
	MonthMin     int
	MonthMax     int
	FeedKgMin    float64
	FeedKgMax    float64
	DensityMin   float64
	DensityMax   float64
}

func DefaultConfig() Config {
	return Config{
		MonthMin:   1,
		MonthMax:   12,
		FeedKgMin:  1.0,
		FeedKgMax:  6.0,
		DensityMin: 9.0,
		DensityMax: 50.0,
	}
}

// PredictionRequest is the five-field input contract. All fields are
// required and independently validated.
type PredictionRequest struct {
	MonthLoaded      int     `json:"month_loaded"`
	Sex              string  `json:"sex"`
	PerCapitaFeedKg  float64 `json:"percapita_feed_kg"`
	ConstructionType string  `json:"construction_type"`
	DensityPerM2     float64 `json:"density_per_m2"`
}

// PredictionResult is a point estimate with provenance for auditability.
type PredictionResult struct {
	Request                 PredictionRequest `json:"request"`
	EstimatedDailyGainGrams float64           `json:"estimated_daily_gain_grams"`
	Provenance              string            `json:"provenance"`
}

// Validate fails fast, before any feature derivation or estimator call:
// required fields, then categorical membership, then numeric ranges.
func (c Config) Validate(req PredictionRequest) error {
	if req.MonthLoaded == 0 {
		return &types.MissingFieldError{Field: "month_loaded"}
	}
	if req.Sex == "" {
		return &types.MissingFieldError{Field: "sex"}
	}
	if req.PerCapitaFeedKg == 0 {
		return &types.MissingFieldError{Field: "percapita_feed_kg"}
	}
	if req.ConstructionType == "" {
		return &types.MissingFieldError{Field: "construction_type"}
	}
	if req.DensityPerM2 == 0 {
		return &types.MissingFieldError{Field: "density_per_m2"}
	}

	if !containsString(validSexes, req.Sex) {
		return &types.InvalidCategoryError{Field: "sex", Value: req.Sex, Allowed: validSexes}
	}
	if !containsString(validConstructions, req.ConstructionType) {
		return &types.InvalidCategoryError{Field: "construction_type", Value: req.ConstructionType, Allowed: validConstructions}
	}

	if req.MonthLoaded < c.MonthMin || req.MonthLoaded > c.MonthMax {
		return &types.OutOfRangeError{Field: "month_loaded", Value: float64(req.MonthLoaded), Min: float64(c.MonthMin), Max: float64(c.MonthMax)}
	}
	if req.PerCapitaFeedKg < c.FeedKgMin || req.PerCapitaFeedKg > c.FeedKgMax {
		return &types.OutOfRangeError{Field: "percapita_feed_kg", Value: req.PerCapitaFeedKg, Min: c.FeedKgMin, Max: c.FeedKgMax}
	}
	if req.DensityPerM2 < c.DensityMin || req.DensityPerM2 > c.DensityMax {
		return &types.OutOfRangeError{Field: "density_per_m2", Value: req.DensityPerM2, Min: c.DensityMin, Max: c.DensityMax}
	}

	return nil
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
