package nllfit

import (
	"math"

	"github.com/hepstats/fitbench/internal/kernels"
)

// Mode selects the likelihood normalization applied by the reducer.
type Mode int

const (
	// ModeExtendedLikelihood treats coefficients as event yields and adds the
	// Poisson normalization term: NLL = sum(coeffs) - sum(log density). This
	// is the default, matching the extended fit the engine was built to
	// benchmark.
	ModeExtendedLikelihood Mode = iota

	// ModeProbability normalizes each event density by the coefficient sum:
	// NLL = -sum(log(density/sum(coeffs))).
	ModeProbability
)

func (m Mode) String() string {
	switch m {
	case ModeExtendedLikelihood:
		return "extended"
	case ModeProbability:
		return "probability"
	default:
		return "mode(?)"
	}
}

// Result is one objective evaluation. It is ephemeral: produced for a single
// parameter proposal and consumed by the minimizer within that step.
type Result struct {
	// NLL is the negative log-likelihood. Always finite: degenerate
	// proposals are floor-clamped, never -Inf or NaN.
	NLL float64

	// Gradient is the derivative of NLL with respect to the parameter
	// vector, in binding order. Nil unless EvaluateWithGradient produced
	// this result.
	Gradient []float64

	// Clamped counts events whose density fell below the floor and entered
	// the sum as -log(floor). A non-zero count is the numeric-degeneracy
	// warning: recoverable, the minimizer sees a large finite penalty and
	// moves away.
	Clamped int
}

// Reduce folds a density array into a Result. The reduction order depends on
// the strategy that produced the densities: the scalar oracle sums strictly
// left to right, the batched strategies use the lane-striped reduction
// (deterministic, but tolerance-bounded against the oracle).
func Reduce(densities []float64, mode Mode, coeffSum float64, strategy Strategy, floor float64) Result {
	n := len(densities)

	var sumLog float64
	var clamped int
	if strategy == StrategyScalar {
		sumLog, clamped = kernels.SumLog(densities, floor)
	} else {
		sumLog, clamped = kernels.SumLogLanes(densities, floor)
	}

	switch mode {
	case ModeProbability:
		if coeffSum <= 0 {
			// Every event is effectively at the floor; same large finite
			// penalty as full clamping.
			return Result{NLL: -float64(n) * math.Log(floor), Clamped: n}
		}
		return Result{NLL: -sumLog + float64(n)*math.Log(coeffSum), Clamped: clamped}
	default: // ModeExtendedLikelihood
		return Result{NLL: coeffSum - sumLog, Clamped: clamped}
	}
}
