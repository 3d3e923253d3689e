package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, want, ParseDate("14/08/2025"))
	assert.Equal(t, want, ParseDate("14/08/25"))
	assert.Equal(t, want, ParseDate("2025-08-14"))
	assert.True(t, ParseDate("not a date").IsZero())
	assert.True(t, ParseDate("").IsZero())
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 1234.5, ParseFloat("1.234,5"))
	assert.Equal(t, 3.25, ParseFloat("3,25"))
	assert.Equal(t, 3.25, ParseFloat("3.25"))
	assert.Equal(t, 1000.0, ParseFloat("1000"))
	assert.Equal(t, 0.0, ParseFloat("n/a"))
	assert.Equal(t, 0.0, ParseFloat(""))
}

func TestCeilAge(t *testing.T) {
	assert.Equal(t, 30, CeilAge(29.4))
	assert.Equal(t, 30, CeilAge(30.0))
	assert.Equal(t, 0, CeilAge(0))
}
