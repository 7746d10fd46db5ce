package nllfit

import "github.com/hepstats/fitbench/pkg/pdf"

// Options configures an Objective. Zero values mean "pick a sane default";
// use the With* helpers rather than constructing Options directly.
type Options struct {
	// Strategy is the execution backend. Default: DetectStrategy().
	// The strategy is fixed for the life of the Objective; a fit never
	// switches backends mid-run.
	Strategy Strategy

	// Mode is the likelihood normalization. Default: ModeExtendedLikelihood.
	Mode Mode

	// Floor is the minimum density entering a log. Default: pdf.DensityFloor.
	Floor float64

	// Threads is the vector-strategy worker count. 0 auto-tunes from
	// GOMAXPROCS (capped at the pool maximum); 1 forces single-threaded
	// evaluation.
	Threads int

	// Verbose enables progress logging.
	Verbose bool

	strategySet bool
}

// Option is a functional option for configuring an Objective.
type Option func(*Options)

// WithStrategy fixes the execution strategy instead of auto-detecting.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
		o.strategySet = true
	}
}

// WithMode selects the likelihood normalization mode.
func WithMode(m Mode) Option {
	return func(o *Options) {
		o.Mode = m
	}
}

// WithFloor overrides the density floor. The floor must match what the
// minimizer's line search expects as its "effectively impossible" penalty.
func WithFloor(floor float64) Option {
	return func(o *Options) {
		o.Floor = floor
	}
}

// WithThreads sets the vector-strategy worker count.
func WithThreads(n int) Option {
	return func(o *Options) {
		o.Threads = n
	}
}

// WithVerbose enables progress logging.
func WithVerbose(v bool) Option {
	return func(o *Options) {
		o.Verbose = v
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Mode:  ModeExtendedLikelihood,
		Floor: pdf.DensityFloor,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.strategySet {
		o.Strategy = DetectStrategy()
	}
	return o
}
