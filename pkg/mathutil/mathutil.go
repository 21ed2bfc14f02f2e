// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Percentage returns value as a percentage of total. ok is false, with a zero
// result, when total is zero.
func Percentage(value, total float64) (pct float64, ok bool) {
	if total == 0 {
		return 0, false
	}
	return value / total * constants.PercentageMultiplier, true
}

// Discount returns amount discounted back by periods at rate per period.
func Discount(amount, rate float64, periods int) float64 {
	return amount / math.Pow(1+rate, float64(periods))
}

// CrossingFraction returns how far into a period a value moving linearly from
// prev to next passes zero. ok is false when prev and next are equal.
func CrossingFraction(prev, next float64) (fraction float64, ok bool) {
	denominator := next - prev
	if denominator == 0 {
		return 0, false
	}
	return math.Abs(prev) / denominator, true
}
