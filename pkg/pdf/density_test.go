package pdf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

func TestGaussianMatchesReference(t *testing.T) {
	g := NewGaussian(
		NewParameter("mean", 10, 0, 20),
		NewParameter("sigma", 2, 0.1, 10),
	)
	ref := distuv.Normal{Mu: 10, Sigma: 2}

	for x := -5.0; x <= 25.0; x += 0.37 {
		got := g.Evaluate(x)
		want := ref.Prob(x)
		if relDiff(got, want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestGaussianDegenerateSigma(t *testing.T) {
	g := NewGaussian(
		NewParameter("mean", 0, -1, 1),
		NewParameter("sigma", 0, 0, 1),
	)
	if v := g.Evaluate(0); v != 0 {
		t.Errorf("Evaluate with sigma=0 = %v, want 0", v)
	}
	if lv := g.LogEvaluate(0); lv != logDensityFloor {
		t.Errorf("LogEvaluate with sigma=0 = %v, want floor %v", lv, logDensityFloor)
	}
}

func TestGammaMatchesReference(t *testing.T) {
	const shift = 1.0
	g := NewGamma(
		NewParameter("shape", 20, 0.1, 40),
		NewParameter("scale", 0.5, 0.01, 10),
		NewConstParameter("shift", shift),
	)
	// gonum parameterizes by rate Beta = 1/scale.
	ref := distuv.Gamma{Alpha: 20, Beta: 2}

	for x := shift + 0.1; x <= 30.0; x += 0.53 {
		got := g.Evaluate(x)
		want := ref.Prob(x - shift)
		if relDiff(got, want) > 1e-10 {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestGammaSupportBoundary(t *testing.T) {
	g := NewGamma(
		NewParameter("shape", 2, 0.1, 40),
		NewParameter("scale", 1, 0.01, 10),
		NewConstParameter("shift", 3),
	)

	for _, x := range []float64{-10, 0, 2.999, 3} {
		if v := g.Evaluate(x); v != 0 {
			t.Errorf("Evaluate(%v) = %v, want exactly 0 at or below the shift", x, v)
		}
		if lv := g.LogEvaluate(x); lv != logDensityFloor {
			t.Errorf("LogEvaluate(%v) = %v, want floor %v", x, lv, logDensityFloor)
		}
	}
	if v := g.Evaluate(3.001); v <= 0 {
		t.Errorf("Evaluate just above the shift = %v, want positive", v)
	}
}

func TestExponentialMatchesReference(t *testing.T) {
	e := NewExponential(NewParameter("rate", 1.5, 0.1, 10))
	ref := distuv.Exponential{Rate: 1.5}

	for x := 0.0; x <= 10.0; x += 0.29 {
		got := e.Evaluate(x)
		want := ref.Prob(x)
		if relDiff(got, want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
	if v := e.Evaluate(-0.001); v != 0 {
		t.Errorf("Evaluate(-0.001) = %v, want exactly 0 below the support", v)
	}
}

func TestPolynomialNormalization(t *testing.T) {
	p := NewPolynomial([]*Parameter{NewParameter("a", -0.01, -0.05, 0.1)}, 0, 20)

	// Trapezoid integral over the range should come out at 1.
	const steps = 200000
	h := (p.Hi - p.Lo) / steps
	integral := 0.5 * (p.Evaluate(p.Lo) + p.Evaluate(p.Hi))
	for i := 1; i < steps; i++ {
		integral += p.Evaluate(p.Lo + float64(i)*h)
	}
	integral *= h
	if math.Abs(integral-1) > 1e-6 {
		t.Errorf("polynomial integrates to %v over its range, want 1", integral)
	}

	if v := p.Evaluate(-0.5); v != 0 {
		t.Errorf("Evaluate below range = %v, want 0", v)
	}
	if v := p.Evaluate(20.5); v != 0 {
		t.Errorf("Evaluate above range = %v, want 0", v)
	}
}

func TestPolynomialClampsNegativeRegions(t *testing.T) {
	// 1 - 0.2*x goes negative above x = 5, where the raw integral over [0, 10]
	// cancels to exactly 0. The normalization must integrate the clamped
	// curve, not the raw one, so the positive region stays a proper density.
	p := NewPolynomial([]*Parameter{NewParameter("a", -0.2, -1, 1)}, 0, 10)
	if v := p.Evaluate(8); v != 0 {
		t.Errorf("Evaluate in negative region = %v, want 0", v)
	}
	if v := p.Evaluate(2); v <= 0 {
		t.Errorf("Evaluate in positive region = %v, want positive", v)
	}

	// The clamped density still integrates to 1 over the range.
	const steps = 200000
	h := (p.Hi - p.Lo) / steps
	integral := 0.5 * (p.Evaluate(p.Lo) + p.Evaluate(p.Hi))
	for i := 1; i < steps; i++ {
		integral += p.Evaluate(p.Lo + float64(i)*h)
	}
	integral *= h
	if math.Abs(integral-1) > 1e-3 {
		t.Errorf("clamped polynomial integrates to %v over its range, want 1", integral)
	}
}

func TestPolynomialNormTracksCoefficientChanges(t *testing.T) {
	a := NewParameter("a", -0.01, -0.3, 0.1)
	p := NewPolynomial([]*Parameter{a}, 0, 10)

	before := p.Evaluate(2)
	a.Value = -0.2
	after := p.Evaluate(2)
	if before == after {
		t.Errorf("Evaluate(2) unchanged at %v after coefficient moved", after)
	}

	a.Value = -0.01
	if got := p.Evaluate(2); got != before {
		t.Errorf("Evaluate(2) = %v after restoring coefficient, want %v", got, before)
	}
}

func TestLogEvaluateConsistency(t *testing.T) {
	densities := map[string]Density{
		"gaussian": NewGaussian(NewParameter("m", 10, 0, 20), NewParameter("s", 2, 0.1, 10)),
		"gamma": NewGamma(NewParameter("g", 20, 0.1, 40), NewParameter("b", 0.5, 0.01, 10),
			NewConstParameter("mu", 0)),
		"exponential": NewExponential(NewParameter("r", 0.5, 0.1, 10)),
		"polynomial":  NewPolynomial([]*Parameter{NewParameter("a", -0.01, -0.05, 0.1)}, 0, 20),
	}

	for name, d := range densities {
		t.Run(name, func(t *testing.T) {
			for x := 0.5; x <= 19.5; x += 0.73 {
				v := d.Evaluate(x)
				if v < DensityFloor {
					continue
				}
				if got, want := d.LogEvaluate(x), math.Log(v); relDiff(got, want) > 1e-12 {
					t.Errorf("LogEvaluate(%v) = %v, want log(Evaluate) = %v", x, got, want)
				}
			}
		})
	}
}

func TestLogEvaluateDeepTailHitsFloor(t *testing.T) {
	g := NewGaussian(NewParameter("m", 0, -1, 1), NewParameter("s", 1, 0.1, 10))
	// 60 sigma out: the density underflows to 0 but the log stays finite.
	if v := g.Evaluate(60); v != 0 {
		t.Errorf("Evaluate(60) = %v, want underflow to 0", v)
	}
	if lv := g.LogEvaluate(60); lv != logDensityFloor {
		t.Errorf("LogEvaluate(60) = %v, want floor %v", lv, logDensityFloor)
	}
}

func TestEvaluateBatchMatchesScalar(t *testing.T) {
	densities := map[string]Density{
		"gaussian": NewGaussian(NewParameter("m", 10, 0, 20), NewParameter("s", 2, 0.1, 10)),
		"gamma": NewGamma(NewParameter("g", 20, 0.1, 40), NewParameter("b", 0.5, 0.01, 10),
			NewConstParameter("mu", 1)),
		"exponential": NewExponential(NewParameter("r", 0.5, 0.1, 10)),
		"polynomial":  NewPolynomial([]*Parameter{NewParameter("a", -0.01, -0.05, 0.1)}, 0, 20),
	}

	xs := make([]float64, 101) // deliberately not a multiple of the lane width
	for i := range xs {
		xs[i] = -1 + 22*float64(i)/float64(len(xs)-1)
	}

	for name, d := range densities {
		t.Run(name, func(t *testing.T) {
			dst := make([]float64, len(xs))
			d.EvaluateBatch(dst, xs)
			for i, x := range xs {
				want := d.Evaluate(x)
				if relDiff(dst[i], want) > 1e-12 {
					t.Errorf("batch[%d] at x=%v = %v, scalar = %v", i, x, dst[i], want)
				}
			}
		})
	}
}

func TestDensitiesNonNegative(t *testing.T) {
	densities := []Density{
		NewGaussian(NewParameter("m", 10, 0, 20), NewParameter("s", 2, 0.1, 10)),
		NewGamma(NewParameter("g", 0.5, 0.1, 40), NewParameter("b", 2, 0.01, 10),
			NewConstParameter("mu", 0)),
		NewExponential(NewParameter("r", 3, 0.1, 10)),
		NewPolynomial([]*Parameter{NewParameter("a", -0.04, -0.05, 0.1)}, 0, 20),
	}

	for _, d := range densities {
		for x := -5.0; x <= 25.0; x += 0.11 {
			v := d.Evaluate(x)
			if math.IsNaN(v) || v < 0 {
				t.Fatalf("%T.Evaluate(%v) = %v, want finite non-negative", d, x, v)
			}
		}
	}
}
