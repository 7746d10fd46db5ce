package pdf

import (
	"math"

	"github.com/hepstats/fitbench/internal/kernels"
)

// Exponential is an exponential decay density:
//
//	f(x) = rate * exp(-rate*x)
//
// for x >= 0, and exactly 0 for x < 0 (bounded support).
type Exponential struct {
	Rate *Parameter
}

// NewExponential creates an exponential density.
func NewExponential(rate *Parameter) *Exponential {
	return &Exponential{Rate: rate}
}

// Evaluate returns the density at x, exactly 0 below the support.
func (e *Exponential) Evaluate(x float64) float64 {
	rate := e.Rate.Value
	if rate <= 0 || x < 0 {
		return 0
	}
	return rate * math.Exp(-rate*x)
}

// LogEvaluate returns the floor-clamped log density.
func (e *Exponential) LogEvaluate(x float64) float64 {
	rate := e.Rate.Value
	if rate <= 0 || x < 0 {
		return logDensityFloor
	}
	lf := math.Log(rate) - rate*x
	if lf < logDensityFloor {
		return logDensityFloor
	}
	return lf
}

// EvaluateBatch fills dst with densities for all of xs.
func (e *Exponential) EvaluateBatch(dst, xs []float64) {
	kernels.ExpBatch(dst, xs, e.Rate.Value)
}

// Parameters returns [rate].
func (e *Exponential) Parameters() []*Parameter {
	return []*Parameter{e.Rate}
}
