package predictor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDensityBucketFor(t *testing.T) {
	cases := []struct {
		density float64
		want    string
	}{
		{10, DensityLow},
		{13, DensityLow},
		{14, DensityMedium},
		{15, DensityMedium},
		{18, DensityHigh},
		{20, DensityHigh},
		{21, DensityVeryHigh},
		{50, DensityVeryHigh},
	}

	for _, tc := range cases {
		got, err := DensityBucketFor(tc.density)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "density %v", tc.density)
	}
}

func TestDensityBucketOutsideAllBucketsIsError(t *testing.T) {
	for _, density := range []float64{0, -1, 50.1} {
		_, err := DensityBucketFor(density)
		assert.Error(t, err, "density %v", density)
	}
}

func TestDeriveFeaturesCyclicalMonth(t *testing.T) {
	req := validRequest()
	req.MonthLoaded = 3 // sin=1, cos=0 at a quarter turn

	f, err := DeriveFeatures(req)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.MonthSin, 1e-9)
	assert.InDelta(t, 0.0, f.MonthCos, 1e-9)

	req.MonthLoaded = 12
	f, err = DeriveFeatures(req)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f.MonthSin, 1e-9)
	assert.InDelta(t, 1.0, f.MonthCos, 1e-9)
}

func TestDeriveFeaturesFeedPerDensity(t *testing.T) {
	req := validRequest()
	req.PerCapitaFeedKg = 3.0
	req.DensityPerM2 = 15.0

	f, err := DeriveFeatures(req)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, f.FeedPerDensity, 1e-9)
	assert.Equal(t, DensityMedium, f.DensityBucket)
}

func TestDeriveFeaturesIsDeterministic(t *testing.T) {
	req := validRequest()

	a, err := DeriveFeatures(req)
	require.NoError(t, err)
	b, err := DeriveFeatures(req)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// carried base fields are untouched
	assert.Equal(t, req.Sex, a.Sex)
	assert.True(t, math.Abs(a.MonthSin) <= 1 && math.Abs(a.MonthCos) <= 1)
}
