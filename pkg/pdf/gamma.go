package pdf

import (
	"math"

	"github.com/hepstats/fitbench/internal/kernels"
)

// Gamma is a shifted gamma density:
//
//	f(x) = (x-shift)^(shape-1) * exp(-(x-shift)/scale) / (Gamma(shape) * scale^shape)
//
// for x > shift, and exactly 0 for x <= shift (bounded support). The
// evaluation goes through log space so large shape values do not overflow the
// Gamma function.
type Gamma struct {
	Shape *Parameter
	Scale *Parameter
	Shift *Parameter
}

// NewGamma creates a gamma density.
func NewGamma(shape, scale, shift *Parameter) *Gamma {
	return &Gamma{Shape: shape, Scale: scale, Shift: shift}
}

// logNorm returns -log(Gamma(shape)) - shape*log(scale), the log of the
// normalization constant, or NaN for degenerate shape/scale values.
func (g *Gamma) logNorm() float64 {
	shape, scale := g.Shape.Value, g.Scale.Value
	if shape <= 0 || scale <= 0 {
		return math.NaN()
	}
	lg, _ := math.Lgamma(shape)
	return -lg - shape*math.Log(scale)
}

// Evaluate returns the density at x, exactly 0 at and below the shift.
// x == shift is treated as outside the support: for shape < 1 the true
// density diverges there, and a finite 0 keeps the NLL well defined.
func (g *Gamma) Evaluate(x float64) float64 {
	u := x - g.Shift.Value
	if u <= 0 {
		return 0
	}
	lnorm := g.logNorm()
	if math.IsNaN(lnorm) {
		return 0
	}
	lf := (g.Shape.Value-1)*math.Log(u) - u/g.Scale.Value + lnorm
	return math.Exp(lf)
}

// LogEvaluate returns the floor-clamped log density.
func (g *Gamma) LogEvaluate(x float64) float64 {
	u := x - g.Shift.Value
	if u <= 0 {
		return logDensityFloor
	}
	lnorm := g.logNorm()
	if math.IsNaN(lnorm) {
		return logDensityFloor
	}
	lf := (g.Shape.Value-1)*math.Log(u) - u/g.Scale.Value + lnorm
	if lf < logDensityFloor {
		return logDensityFloor
	}
	return lf
}

// EvaluateBatch fills dst with densities for all of xs. The normalization
// (one Lgamma call) is computed once per batch instead of once per event,
// which is where most of the batch speedup for this family comes from.
func (g *Gamma) EvaluateBatch(dst, xs []float64) {
	lnorm := g.logNorm()
	if math.IsNaN(lnorm) {
		for i := range dst[:len(xs)] {
			dst[i] = 0
		}
		return
	}
	kernels.GammaBatch(dst, xs, g.Shape.Value, g.Scale.Value, g.Shift.Value, lnorm)
}

// Parameters returns [shape, scale, shift].
func (g *Gamma) Parameters() []*Parameter {
	return []*Parameter{g.Shape, g.Scale, g.Shift}
}
