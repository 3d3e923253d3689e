package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

func ParseDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	// Try dd/mm/yyyy format first, the ERP export default
	t, err := time.Parse("02/01/2006", dateStr)
	if err == nil {
		return t
	}
	// Two-digit years appear in the mortality export
	t, err = time.Parse("02/01/06", dateStr)
	if err == nil {
		return t
	}
	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		return t
	}
	return time.Time{}
}

// ParseFloat handles the Chilean locale of the exports: dot as thousands
// separator, comma as decimal separator.
func ParseFloat(valStr string) float64 {
	if valStr == "" {
		return 0.0
	}
	cleanStr := valStr
	if strings.Contains(cleanStr, ",") {
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	}
	val, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0.0
	}
	return val
}

func ParseInt(valStr string) int {
	if valStr == "" {
		return 0
	}
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return 0
	}
	return val
}

// CeilAge rounds a fractional mean age up to the integer day used for
// age-keyed joins.
func CeilAge(age float64) int {
	return int(math.Ceil(age))
}
