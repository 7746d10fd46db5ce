package kernels

import (
	"math"
	"testing"
)

// refGauss is the per-element reference the lane kernels are checked against.
func refGauss(x, mean, sigma float64) float64 {
	z := (x - mean) / sigma
	return invSqrt2Pi / sigma * math.Exp(-0.5*z*z)
}

func fillRamp(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = -5 + 0.13*float64(i)
	}
	return xs
}

func TestGaussBatch(t *testing.T) {
	// Lengths straddling chunk boundaries, including the empty array and the
	// ChunkWidth+1 partial-chunk case.
	lengths := []int{0, 1, 7, 8, 9, 16, 31, 100}

	for _, n := range lengths {
		xs := fillRamp(n)
		dst := make([]float64, n)
		GaussBatch(dst, xs, 1.5, 0.7)

		for i, x := range xs {
			want := refGauss(x, 1.5, 0.7)
			if math.Abs(dst[i]-want) > 1e-15*math.Max(1, math.Abs(want)) {
				t.Errorf("n=%d: dst[%d] = %g, want %g", n, i, dst[i], want)
			}
		}
	}
}

func TestGaussBatchDegenerateSigma(t *testing.T) {
	xs := fillRamp(10)
	dst := make([]float64, 10)
	for i := range dst {
		dst[i] = 42 // stale data must be overwritten, not reused
	}
	GaussBatch(dst, xs, 0, -1)
	for i, v := range dst {
		if v != 0 {
			t.Errorf("dst[%d] = %g, want 0 for sigma<=0", i, v)
		}
	}
}

func TestExpBatchSupportBoundary(t *testing.T) {
	xs := []float64{-2, -0.001, 0, 0.5, 1, 3, 10, 20, 30} // 9 values: one full chunk + tail
	dst := make([]float64, len(xs))
	ExpBatch(dst, xs, 1.3)

	for i, x := range xs {
		var want float64
		if x >= 0 {
			want = 1.3 * math.Exp(-1.3*x)
		}
		if x < 0 && dst[i] != 0 {
			t.Errorf("x=%g: got %g, want exactly 0 below support", x, dst[i])
		}
		if math.Abs(dst[i]-want) > 1e-15 {
			t.Errorf("x=%g: got %g, want %g", x, dst[i], want)
		}
	}
}

func TestGammaBatch(t *testing.T) {
	const (
		shape = 20.0
		scale = 0.5
		shift = 1.0
	)
	lg, _ := math.Lgamma(shape)
	lnorm := -lg - shape*math.Log(scale)

	xs := fillRamp(33)
	dst := make([]float64, len(xs))
	GammaBatch(dst, xs, shape, scale, shift, lnorm)

	for i, x := range xs {
		u := x - shift
		var want float64
		if u > 0 {
			want = math.Exp((shape-1)*math.Log(u) - u/scale + lnorm)
		}
		if u <= 0 {
			if dst[i] != 0 {
				t.Errorf("x=%g: got %g, want exactly 0 at/below shift", x, dst[i])
			}
			continue
		}
		if math.IsNaN(dst[i]) {
			t.Fatalf("x=%g: NaN density", x)
		}
		rel := math.Abs(dst[i]-want) / math.Max(want, 1e-300)
		if rel > 1e-12 {
			t.Errorf("x=%g: got %g, want %g (rel %g)", x, dst[i], want, rel)
		}
	}
}

func TestAccumScaled(t *testing.T) {
	n := 21
	dst := make([]float64, n)
	src := make([]float64, n)
	for i := range src {
		dst[i] = float64(i)
		src[i] = float64(2 * i)
	}
	AccumScaled(dst, src, 0.5)

	for i := range dst {
		want := float64(i) + 0.5*float64(2*i)
		if dst[i] != want {
			t.Errorf("dst[%d] = %g, want %g", i, dst[i], want)
		}
	}
}

func TestBatchKernelsNonNegative(t *testing.T) {
	xs := fillRamp(64)
	dst := make([]float64, len(xs))

	GaussBatch(dst, xs, 0, 2)
	for i, v := range dst {
		if v < 0 || math.IsNaN(v) {
			t.Errorf("GaussBatch dst[%d] = %g", i, v)
		}
	}

	ExpBatch(dst, xs, 0.8)
	for i, v := range dst {
		if v < 0 || math.IsNaN(v) {
			t.Errorf("ExpBatch dst[%d] = %g", i, v)
		}
	}

	lg, _ := math.Lgamma(2.5)
	GammaBatch(dst, xs, 2.5, 1.2, 0, -lg-2.5*math.Log(1.2))
	for i, v := range dst {
		if v < 0 || math.IsNaN(v) {
			t.Errorf("GammaBatch dst[%d] = %g", i, v)
		}
	}
}
