// Package formulas holds the small numeric helpers shared by the scenario and
// tROAS engines.
package formulas

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// SafeDivide returns numerator/denominator, or fallback when the denominator
// is exactly zero.
//
// Every division whose denominator can legitimately be zero (zero baseline
// revenue, zero spend, zero orders) goes through here so the engines never
// produce NaN or Inf for finite input.
func SafeDivide(numerator, denominator, fallback float64) float64 {
	if denominator == 0 {
		return fallback
	}
	return numerator / denominator
}

// Clamp bounds value to [min, max]
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Clamp0100 bounds a score to the 0-100 range
func Clamp0100(value float64) float64 {
	return Clamp(value, 0, 100)
}

// Sum adds all values. Returns 0 for an empty slice.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// Span returns n evenly spaced values from lo to hi inclusive.
// Used instead of accumulating a float step, which drifts (1.0 + 0.1*70 != 8.0).
func Span(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Round rounds value half away from zero to the given number of decimal places.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
