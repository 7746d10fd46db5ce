// Package kernels provides the data-parallel math kernels behind the vector
// evaluation strategy: per-family density batches over fixed-width lanes and
// deterministic log-sum reductions.
package kernels

import "math"

// ChunkWidth is the lane count of the batch kernels: 8 doubles, one AVX2/SVE
// cache line. All lane-unrolled loops process full chunks and fall back to a
// scalar tail for the remainder, so any input length is valid and no kernel
// ever reads past len(xs).
const ChunkWidth = 8

// invSqrt2Pi = 1/sqrt(2*pi).
const invSqrt2Pi = 0.3989422804014327

// GaussBatch fills dst[i] with the normalized Gaussian density at xs[i].
// A non-positive sigma zeroes the output (degenerate proposal).
func GaussBatch(dst, xs []float64, mean, sigma float64) {
	n := len(xs)
	if len(dst) < n {
		panic("kernels: GaussBatch dst too small")
	}
	if sigma <= 0 {
		Zero(dst[:n])
		return
	}
	norm := invSqrt2Pi / sigma
	inv := 1 / sigma

	i := 0
	for ; i+ChunkWidth <= n; i += ChunkWidth {
		x := xs[i : i+ChunkWidth : i+ChunkWidth]
		d := dst[i : i+ChunkWidth : i+ChunkWidth]
		var z [ChunkWidth]float64
		for l := 0; l < ChunkWidth; l++ {
			z[l] = (x[l] - mean) * inv
		}
		for l := 0; l < ChunkWidth; l++ {
			d[l] = norm * math.Exp(-0.5*z[l]*z[l])
		}
	}
	for ; i < n; i++ {
		z := (xs[i] - mean) * inv
		dst[i] = norm * math.Exp(-0.5*z*z)
	}
}

// ExpBatch fills dst[i] with rate*exp(-rate*x) for x >= 0, 0 below the
// support. A non-positive rate zeroes the output.
func ExpBatch(dst, xs []float64, rate float64) {
	n := len(xs)
	if len(dst) < n {
		panic("kernels: ExpBatch dst too small")
	}
	if rate <= 0 {
		Zero(dst[:n])
		return
	}

	i := 0
	for ; i+ChunkWidth <= n; i += ChunkWidth {
		x := xs[i : i+ChunkWidth : i+ChunkWidth]
		d := dst[i : i+ChunkWidth : i+ChunkWidth]
		for l := 0; l < ChunkWidth; l++ {
			if x[l] < 0 {
				d[l] = 0
			} else {
				d[l] = rate * math.Exp(-rate*x[l])
			}
		}
	}
	for ; i < n; i++ {
		if xs[i] < 0 {
			dst[i] = 0
		} else {
			dst[i] = rate * math.Exp(-rate*xs[i])
		}
	}
}

// GammaBatch fills dst[i] with the shifted gamma density at xs[i].
// lnorm is the precomputed -log(Gamma(shape)) - shape*log(scale); hoisting it
// out of the event loop is the main batch win for this family. Lanes at or
// below the shift evaluate to exactly 0 (bounded support).
func GammaBatch(dst, xs []float64, shape, scale, shift, lnorm float64) {
	n := len(xs)
	if len(dst) < n {
		panic("kernels: GammaBatch dst too small")
	}
	if shape <= 0 || scale <= 0 {
		Zero(dst[:n])
		return
	}
	sm1 := shape - 1
	inv := 1 / scale

	i := 0
	for ; i+ChunkWidth <= n; i += ChunkWidth {
		x := xs[i : i+ChunkWidth : i+ChunkWidth]
		d := dst[i : i+ChunkWidth : i+ChunkWidth]
		for l := 0; l < ChunkWidth; l++ {
			u := x[l] - shift
			if u <= 0 {
				d[l] = 0
			} else {
				d[l] = math.Exp(sm1*math.Log(u) - u*inv + lnorm)
			}
		}
	}
	for ; i < n; i++ {
		u := xs[i] - shift
		if u <= 0 {
			dst[i] = 0
		} else {
			dst[i] = math.Exp(sm1*math.Log(u) - u*inv + lnorm)
		}
	}
}

// AccumScaled adds c*src[i] into dst[i]: the mixture accumulation step of the
// vector strategy (one call per component, column order).
func AccumScaled(dst, src []float64, c float64) {
	n := len(src)
	if len(dst) < n {
		panic("kernels: AccumScaled dst too small")
	}

	i := 0
	for ; i+ChunkWidth <= n; i += ChunkWidth {
		s := src[i : i+ChunkWidth : i+ChunkWidth]
		d := dst[i : i+ChunkWidth : i+ChunkWidth]
		for l := 0; l < ChunkWidth; l++ {
			d[l] += c * s[l]
		}
	}
	for ; i < n; i++ {
		dst[i] += c * src[i]
	}
}

// Zero clears a slice.
func Zero(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}
