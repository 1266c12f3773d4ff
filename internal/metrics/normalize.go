package metrics

import (
	"math"

	"github.com/guregu/null/v6"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

// Normalize drops null and non-finite closes and keeps the remaining values in
// their original chronological order.
//
// Nulls are removed, not interpolated: fixed-lag lookups ("N sessions ago")
// must walk over valid sessions only. An empty or all-null input yields an
// empty CleanSeries, which callers treat as insufficient data.
func Normalize(closes []null.Float) models.CleanSeries {
	values := make([]float64, 0, len(closes))
	for _, c := range closes {
		if v, ok := finite(c); ok {
			values = append(values, v)
		}
	}
	return models.CleanSeries{Values: values, Count: len(values)}
}

// finite unwraps a nullable float, rejecting null, NaN and ±Inf.
func finite(f null.Float) (float64, bool) {
	if !f.Valid {
		return 0, false
	}
	if math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
		return 0, false
	}
	return f.Float64, true
}
