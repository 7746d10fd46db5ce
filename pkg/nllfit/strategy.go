// Package nllfit evaluates a mixture model's density over an observation
// array and reduces it to a negative log-likelihood, with interchangeable
// scalar, vector-batch and accelerator execution strategies. It is the
// objective-function side of a fit: an external minimizer proposes parameter
// vectors, this package prices them.
package nllfit

import (
	"fmt"

	"github.com/hepstats/fitbench/internal/kernels"
)

// Strategy selects which execution backend processes the observation array.
// All strategies compute the same mathematical result and must agree within
// 1e-6 relative tolerance; only operation ordering and hardware differ.
type Strategy int

const (
	// StrategyScalar evaluates one event at a time, left to right. It is the
	// reference implementation and the reproducibility oracle: called twice
	// on identical inputs it returns bit-identical results.
	StrategyScalar Strategy = iota

	// StrategyVectorBatch evaluates fixed-width chunks with the data-parallel
	// kernels, optionally spread across a worker pool for large arrays.
	StrategyVectorBatch

	// StrategyAccelerator offloads the batch to a registered device backend.
	// Requesting it without a registered device is an error, never a silent
	// fallback.
	StrategyAccelerator
)

func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "scalar"
	case StrategyVectorBatch:
		return "vector"
	case StrategyAccelerator:
		return "accel"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a CLI/config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "scalar":
		return StrategyScalar, nil
	case "vector", "cpu":
		return StrategyVectorBatch, nil
	case "accel", "cuda":
		return StrategyAccelerator, nil
	case "auto":
		return DetectStrategy(), nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want scalar, vector, accel or auto)", s)
	}
}

// DetectStrategy picks the fastest always-available strategy for this CPU:
// vector batching when the hardware has wide FMA-capable vector units, scalar
// otherwise. The accelerator is never auto-selected; it must be requested
// explicitly so its absence surfaces as an error.
func DetectStrategy() Strategy {
	if kernels.HasWideSIMD() {
		return StrategyVectorBatch
	}
	return StrategyScalar
}
