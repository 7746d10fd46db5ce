package kernels

import "math"

// SumLog returns the strict left-to-right sum of log(max(v, floor)) together
// with the number of clamped values. This is the scalar reduction: called
// twice on identical input it is bit-identical, which makes it the oracle the
// vector paths are checked against.
func SumLog(vals []float64, floor float64) (sum float64, clamped int) {
	lfloor := math.Log(floor)
	for _, v := range vals {
		if v < floor {
			sum += lfloor
			clamped++
		} else {
			sum += math.Log(v)
		}
	}
	return sum, clamped
}

// SumLogLanes is the vectorized reduction: ChunkWidth independent lane
// accumulators stride across the array and are combined pairwise in a fixed
// order, with the scalar tail added last. The order is deterministic but
// differs from left-to-right, so results agree with SumLog only within
// floating-point tolerance, never necessarily bit-for-bit.
func SumLogLanes(vals []float64, floor float64) (sum float64, clamped int) {
	lfloor := math.Log(floor)
	n := len(vals)

	var acc [ChunkWidth]float64
	i := 0
	for ; i+ChunkWidth <= n; i += ChunkWidth {
		v := vals[i : i+ChunkWidth : i+ChunkWidth]
		for l := 0; l < ChunkWidth; l++ {
			if v[l] < floor {
				acc[l] += lfloor
				clamped++
			} else {
				acc[l] += math.Log(v[l])
			}
		}
	}

	tail := 0.0
	for ; i < n; i++ {
		if vals[i] < floor {
			tail += lfloor
			clamped++
		} else {
			tail += math.Log(vals[i])
		}
	}

	s01 := acc[0] + acc[1]
	s23 := acc[2] + acc[3]
	s45 := acc[4] + acc[5]
	s67 := acc[6] + acc[7]
	return (s01+s23)+(s45+s67) + tail, clamped
}
