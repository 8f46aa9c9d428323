// Package strength holds the pure strength-estimation math.
package strength

import "math"

// epleyFactor is the per-rep increment of the Epley-style estimate.
const epleyFactor = 0.0333

// Estimate returns the estimated one-rep max for a sub-maximal
// weight/reps pair, rounded to two decimal places:
//
//	weight * (1 + 0.0333 * reps)
//
// Estimate(w, 0) == w. Inputs must be non-negative; callers validate
// before invoking.
func Estimate(weight float64, reps int) float64 {
	raw := weight * (1 + epleyFactor*float64(reps))
	return math.Round(raw*100) / 100
}
