package nllfit

import (
	"runtime"
	"sync"

	"github.com/hepstats/fitbench/internal/kernels"
	"github.com/hepstats/fitbench/pkg/pdf"
)

// parallelThreshold is the array length below which the vector strategy stays
// single-threaded: under ~4k events the per-goroutine dispatch cost eats the
// speedup from splitting the chunk loop.
const parallelThreshold = 4096

// maxWorkers caps the vector worker pool. Beyond ~16 workers the chunk loop
// is memory-bound and extra goroutines only add scheduling noise.
const maxWorkers = 16

// EvaluateBatch fills dst[i] with the mixture density at xs[i] using the
// given strategy. dst must have the same length as xs; the ordering of the
// output matches the input. This is the stateless entry point: it allocates
// vector scratch per call, so hot fit loops should go through Objective,
// which reuses its buffers.
func EvaluateBatch(m *pdf.Mixture, xs, dst []float64, strategy Strategy) error {
	if len(xs) == 0 {
		return &ShapeMismatchError{Reason: "empty observation array"}
	}
	if len(dst) != len(xs) {
		return &ShapeMismatchError{Reason: "dst length does not match observation array"}
	}

	switch strategy {
	case StrategyScalar:
		evaluateScalar(m, xs, dst)
		return nil
	case StrategyVectorBatch:
		comp := make([]float64, len(xs))
		evaluateVector(m, xs, dst, comp, autoThreads(0))
		return nil
	case StrategyAccelerator:
		dev, ok := registeredDevice()
		if !ok {
			return &StrategyUnavailableError{Strategy: strategy}
		}
		batch, err := dev.Bind(xs)
		if err != nil {
			return err
		}
		defer batch.Close()
		return batch.Evaluate(m, dst)
	default:
		return &StrategyUnavailableError{Strategy: strategy}
	}
}

// evaluateScalar is the reference path: events outer, components inner,
// strictly left to right.
func evaluateScalar(m *pdf.Mixture, xs, dst []float64) {
	terms := m.Terms()
	for i, x := range xs {
		s := 0.0
		for _, t := range terms {
			s += t.Coefficient.Value * t.Density.Evaluate(x)
		}
		dst[i] = s
	}
}

// evaluateVector is the batch path: for each component the family kernel
// fills a chunk of the scratch buffer, which is then accumulated into dst
// scaled by the coefficient. Component-major order means the rounding differs
// from the scalar path's event-major order, which is exactly the difference
// the cross-strategy tolerance bound covers.
func evaluateVector(m *pdf.Mixture, xs, dst, comp []float64, threads int) {
	n := len(xs)
	if threads <= 1 || n < parallelThreshold {
		vectorRange(m, xs, dst, comp, 0, n)
		return
	}

	// Contiguous per-worker ranges, aligned to the kernel chunk width so no
	// two workers share a partially filled chunk. Ranges are disjoint: dst
	// and comp need no locking, and xs is read-only throughout.
	per := (n + threads - 1) / threads
	per = (per + kernels.ChunkWidth - 1) / kernels.ChunkWidth * kernels.ChunkWidth

	var wg sync.WaitGroup
	for start := 0; start < n; start += per {
		end := min(start+per, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			vectorRange(m, xs, dst, comp, s, e)
		}(start, end)
	}
	wg.Wait()
}

// vectorRange evaluates the mixture over xs[start:end].
func vectorRange(m *pdf.Mixture, xs, dst, comp []float64, start, end int) {
	kernels.Zero(dst[start:end])
	for _, t := range m.Terms() {
		t.Density.EvaluateBatch(comp[start:end], xs[start:end])
		kernels.AccumScaled(dst[start:end], comp[start:end], t.Coefficient.Value)
	}
}

// autoThreads resolves a thread-count option: explicit values pass through,
// zero picks a pool size from the machine.
func autoThreads(threads int) int {
	if threads > 0 {
		return threads
	}
	return min(runtime.GOMAXPROCS(0), maxWorkers)
}
