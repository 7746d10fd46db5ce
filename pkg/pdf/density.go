package pdf

import "math"

// DensityFloor is the smallest density value that enters a log-likelihood.
// Evaluations below the floor (including exact zeros outside a family's
// support) are clamped before the log, so a degenerate parameter proposal
// contributes -log(1e-300) ~ 690 per event: a large but finite penalty the
// minimizer's line search can recover from, instead of -Inf or NaN.
const DensityFloor = 1e-300

// logDensityFloor = log(DensityFloor), precomputed for the log paths.
var logDensityFloor = math.Log(DensityFloor)

// Density is the capability shared by all component density families.
//
// Evaluate must return a finite, non-negative value for every real x, and
// exactly 0 (never NaN) outside the family's support. LogEvaluate returns the
// floor-clamped logarithm, see DensityFloor. EvaluateBatch fills dst[i] with
// the density at xs[i] using the data-parallel kernels; dst and xs must have
// equal length. EvaluateBatch may be called concurrently on disjoint slices of
// the same arrays as long as no parameter is mutated in flight.
type Density interface {
	Evaluate(x float64) float64
	LogEvaluate(x float64) float64
	EvaluateBatch(dst, xs []float64)

	// Parameters returns the shape parameters in a fixed order.
	Parameters() []*Parameter
}

// clampLog returns log(v) clamped at the density floor.
func clampLog(v float64) float64 {
	if v < DensityFloor {
		return logDensityFloor
	}
	return math.Log(v)
}
