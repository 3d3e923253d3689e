package types

import (
	"fmt"
	"strings"
)

// MissingSourceError reports that a unit's event ledger could not be found.
// The unit is skipped and the batch continues.
type MissingSourceError struct {
	Key    SectorKey
	Source string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("missing %s ledger for %s", e.Source, e.Key)
}

// DataIntegrityError reports derived values that violate an accounting
// invariant (negative stock, per-capita division by zero). The offending
// unit is skipped and reported; it never aborts the batch.
type DataIntegrityError struct {
	Key    UnitKey
	Detail string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation for %s: %s", e.Key, e.Detail)
}

// MissingFieldError rejects a prediction request that omits a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidCategoryError rejects a categorical value outside the allowed set.
type InvalidCategoryError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (allowed: %s)", e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

// OutOfRangeError rejects a numeric value outside its validated interval.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s out of range [%g, %g]: %g", e.Field, e.Min, e.Max, e.Value)
}

// EstimatorUnavailableError reports that the trained estimator is missing or
// unreachable. Only the projection stage fails; the rest of the run proceeds.
type EstimatorUnavailableError struct {
	Reason string
}

func (e *EstimatorUnavailableError) Error() string {
	return fmt.Sprintf("estimator unavailable: %s", e.Reason)
}
