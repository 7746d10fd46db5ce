package pdf

import (
	"math"
	"sync"
)

// normGridPoints is the scan resolution for negativity detection and for the
// numeric fallback integral when the polynomial dips below zero.
const normGridPoints = 1024

// Polynomial is a polynomial density over a declared observable range:
//
//	f(x) = max(0, 1 + c1*x + c2*x^2 + ... + cn*x^n) / N
//
// where N is the integral of the clamped polynomial over [Lo, Hi], so the
// density integrates to 1 whenever it is positive anywhere on the range.
// The caller is expected to keep the polynomial non-negative over the range;
// regions where it dips below zero evaluate to 0 and are excluded from N, so
// a badly shaped proposal yields a penalized, finite NLL rather than a crash.
type Polynomial struct {
	Coeffs []*Parameter // c1..cn, constant term fixed at 1
	Lo, Hi float64

	// Normalization cache, keyed by the coefficient values. Parameters move
	// once per optimizer step while the per-event path asks for the norm once
	// per observation, so the scan runs once per proposal, not per event.
	normMu     sync.Mutex
	normCoeffs []float64
	normVal    float64
}

// NewPolynomial creates a polynomial density over [lo, hi].
func NewPolynomial(coeffs []*Parameter, lo, hi float64) *Polynomial {
	return &Polynomial{Coeffs: coeffs, Lo: lo, Hi: hi}
}

// raw evaluates 1 + c1*x + ... + cn*x^n by Horner's rule.
func (p *Polynomial) raw(x float64) float64 {
	acc := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = acc*x + p.Coeffs[i].Value
	}
	return 1 + x*acc
}

// rawIntegral returns the analytic integral of the raw polynomial over [Lo, Hi].
func (p *Polynomial) rawIntegral() float64 {
	lo, hi := p.Lo, p.Hi
	n := hi - lo
	plo, phi := lo, hi
	for k, c := range p.Coeffs {
		plo *= lo
		phi *= hi
		n += c.Value * (phi - plo) / float64(k+2)
	}
	return n
}

// integrateClamped returns the integral of max(0, raw) over [Lo, Hi]. When
// the scan finds no negative sample the clamp never bites and the analytic
// integral is exact; otherwise the clamped curve is integrated by trapezoids
// on the same grid. Dips narrower than the grid spacing go undetected.
func (p *Polynomial) integrateClamped() float64 {
	span := p.Hi - p.Lo
	if span <= 0 {
		return 0
	}

	negative := false
	for i := 0; i <= normGridPoints; i++ {
		if p.raw(p.Lo+span*float64(i)/normGridPoints) < 0 {
			negative = true
			break
		}
	}
	if !negative {
		return p.rawIntegral()
	}

	sum := 0.5 * (math.Max(0, p.raw(p.Lo)) + math.Max(0, p.raw(p.Hi)))
	for i := 1; i < normGridPoints; i++ {
		sum += math.Max(0, p.raw(p.Lo+span*float64(i)/normGridPoints))
	}
	return sum * span / normGridPoints
}

// norm returns the cached clamped integral, rescanning only when a
// coefficient value has changed since the last call.
func (p *Polynomial) norm() float64 {
	p.normMu.Lock()
	defer p.normMu.Unlock()

	if len(p.normCoeffs) == len(p.Coeffs) {
		same := true
		for i, c := range p.Coeffs {
			if p.normCoeffs[i] != c.Value {
				same = false
				break
			}
		}
		if same {
			return p.normVal
		}
	}

	if p.normCoeffs == nil {
		p.normCoeffs = make([]float64, len(p.Coeffs))
	}
	for i, c := range p.Coeffs {
		p.normCoeffs[i] = c.Value
	}
	p.normVal = p.integrateClamped()
	return p.normVal
}

// Evaluate returns the density at x, 0 outside [Lo, Hi].
func (p *Polynomial) Evaluate(x float64) float64 {
	if x < p.Lo || x > p.Hi {
		return 0
	}
	n := p.norm()
	if n <= 0 {
		return 0
	}
	v := p.raw(x)
	if v <= 0 {
		return 0
	}
	return v / n
}

// LogEvaluate returns the floor-clamped log density.
func (p *Polynomial) LogEvaluate(x float64) float64 {
	return clampLog(p.Evaluate(x))
}

// EvaluateBatch fills dst with densities for all of xs. Unlike the other
// families this loop is not lane-unrolled: the inner Horner recurrence is
// already branch-free, and the batch win is resolving the normalization
// integral once instead of once per event.
func (p *Polynomial) EvaluateBatch(dst, xs []float64) {
	n := p.norm()
	if n <= 0 {
		for i := range dst[:len(xs)] {
			dst[i] = 0
		}
		return
	}
	inv := 1 / n
	for i, x := range xs {
		if x < p.Lo || x > p.Hi {
			dst[i] = 0
			continue
		}
		v := p.raw(x)
		if v <= 0 {
			dst[i] = 0
			continue
		}
		dst[i] = v * inv
	}
}

// Parameters returns the coefficient parameters c1..cn.
func (p *Polynomial) Parameters() []*Parameter {
	return append([]*Parameter(nil), p.Coeffs...)
}
