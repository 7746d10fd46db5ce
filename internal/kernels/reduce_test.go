package kernels

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestSumLogDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = rng.Float64() + 1e-3
	}

	a, ca := SumLog(vals, 1e-300)
	b, cb := SumLog(vals, 1e-300)
	if a != b || ca != cb {
		t.Fatalf("SumLog not bit-identical on repeat: %v/%d vs %v/%d", a, ca, b, cb)
	}
}

func TestSumLogLanesAgreesWithScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{1, 8, 9, 17, 1000, 4099} {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.Exp(rng.NormFloat64() * 10) // spread over many orders of magnitude
		}

		s, cs := SumLog(vals, 1e-300)
		l, cl := SumLogLanes(vals, 1e-300)

		if cs != cl {
			t.Errorf("n=%d: clamp counts differ: %d vs %d", n, cs, cl)
		}
		rel := math.Abs(s-l) / math.Max(math.Abs(s), 1)
		if rel > 1e-9 {
			t.Errorf("n=%d: scalar %v vs lanes %v (rel %g)", n, s, l, rel)
		}
	}
}

func TestSumLogClampsAtFloor(t *testing.T) {
	const floor = 1e-300
	vals := []float64{1.0, 0, 1e-310, floor, 2.0}

	s, clamped := SumLog(vals, floor)
	if clamped != 2 {
		t.Fatalf("clamped = %d, want 2 (the zero and the subfloor value)", clamped)
	}

	want := math.Log(1.0) + 2*math.Log(floor) + math.Log(floor) + math.Log(2.0)
	// vals[3] == floor is not clamped (strict less-than) but contributes the
	// same log value.
	if math.Abs(s-want) > 1e-9 {
		t.Fatalf("sum = %v, want %v", s, want)
	}
	if math.IsInf(s, 0) || math.IsNaN(s) {
		t.Fatalf("sum must stay finite, got %v", s)
	}
}

func TestSumLogLanesTailClamping(t *testing.T) {
	// Subfloor value sitting in the scalar tail (index ChunkWidth) must be
	// clamped exactly like a lane value.
	vals := make([]float64, ChunkWidth+1)
	for i := range vals {
		vals[i] = 1.0
	}
	vals[ChunkWidth] = 0

	s, clamped := SumLogLanes(vals, 1e-300)
	if clamped != 1 {
		t.Fatalf("clamped = %d, want 1", clamped)
	}
	want := math.Log(1e-300)
	if math.Abs(s-want) > 1e-9 {
		t.Fatalf("sum = %v, want %v", s, want)
	}
}
