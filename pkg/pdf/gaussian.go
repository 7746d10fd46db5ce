package pdf

import (
	"math"

	"github.com/hepstats/fitbench/internal/kernels"
)

// invSqrt2Pi = 1/sqrt(2*pi), the Gaussian normalization constant.
const invSqrt2Pi = 0.3989422804014327

// Gaussian is a normal density with mean and width parameters.
type Gaussian struct {
	Mean  *Parameter
	Sigma *Parameter
}

// NewGaussian creates a Gaussian density.
func NewGaussian(mean, sigma *Parameter) *Gaussian {
	return &Gaussian{Mean: mean, Sigma: sigma}
}

// Evaluate returns exp(-z^2/2) / (sigma*sqrt(2*pi)) with z = (x-mean)/sigma.
// A non-positive sigma is a degenerate proposal and evaluates to 0.
func (g *Gaussian) Evaluate(x float64) float64 {
	sigma := g.Sigma.Value
	if sigma <= 0 {
		return 0
	}
	z := (x - g.Mean.Value) / sigma
	return invSqrt2Pi / sigma * math.Exp(-0.5*z*z)
}

// LogEvaluate returns the floor-clamped log density. The log is computed
// directly from z rather than through Evaluate, so very deep tails keep
// precision until they hit the floor.
func (g *Gaussian) LogEvaluate(x float64) float64 {
	sigma := g.Sigma.Value
	if sigma <= 0 {
		return logDensityFloor
	}
	z := (x - g.Mean.Value) / sigma
	lg := -0.5*z*z + math.Log(invSqrt2Pi/sigma)
	if lg < logDensityFloor {
		return logDensityFloor
	}
	return lg
}

// EvaluateBatch fills dst with densities for all of xs.
func (g *Gaussian) EvaluateBatch(dst, xs []float64) {
	kernels.GaussBatch(dst, xs, g.Mean.Value, g.Sigma.Value)
}

// Parameters returns [mean, sigma].
func (g *Gaussian) Parameters() []*Parameter {
	return []*Parameter{g.Mean, g.Sigma}
}
