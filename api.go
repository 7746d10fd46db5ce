// Package fitbench is the root facade over the batched likelihood engine:
// model construction (pkg/pdf), observation datasets (pkg/dataset) and the
// objective adapter with its execution strategies (pkg/nllfit), re-exported
// under one import for benchmark harnesses and examples.
package fitbench

import (
	"golang.org/x/exp/rand"

	"github.com/hepstats/fitbench/pkg/dataset"
	"github.com/hepstats/fitbench/pkg/nllfit"
	"github.com/hepstats/fitbench/pkg/pdf"
)

// Model construction types.
type (
	Parameter   = pdf.Parameter
	Density     = pdf.Density
	Term        = pdf.Term
	Mixture     = pdf.Mixture
	Dataset     = dataset.Dataset
	Objective   = nllfit.Objective
	Result      = nllfit.Result
	Strategy    = nllfit.Strategy
	Mode        = nllfit.Mode
	Option      = nllfit.Option
	Device      = nllfit.Device
	DeviceBatch = nllfit.DeviceBatch
)

// Execution strategies.
const (
	StrategyScalar      = nllfit.StrategyScalar
	StrategyVectorBatch = nllfit.StrategyVectorBatch
	StrategyAccelerator = nllfit.StrategyAccelerator
)

// Likelihood normalization modes.
const (
	ModeExtendedLikelihood = nllfit.ModeExtendedLikelihood
	ModeProbability        = nllfit.ModeProbability
)

// Objective options.
var (
	WithStrategy = nllfit.WithStrategy
	WithMode     = nllfit.WithMode
	WithFloor    = nllfit.WithFloor
	WithThreads  = nllfit.WithThreads
	WithVerbose  = nllfit.WithVerbose
)

// NewParameter creates a fit parameter with bounds.
func NewParameter(name string, value, min, max float64) *Parameter {
	return pdf.NewParameter(name, value, min, max)
}

// NewConstParameter creates a parameter fixed at a single value.
func NewConstParameter(name string, value float64) *Parameter {
	return pdf.NewConstParameter(name, value)
}

// NewGaussian creates a normal density.
func NewGaussian(mean, sigma *Parameter) Density {
	return pdf.NewGaussian(mean, sigma)
}

// NewGamma creates a shifted gamma density.
func NewGamma(shape, scale, shift *Parameter) Density {
	return pdf.NewGamma(shape, scale, shift)
}

// NewExponential creates an exponential decay density.
func NewExponential(rate *Parameter) Density {
	return pdf.NewExponential(rate)
}

// NewPolynomial creates a polynomial density over [lo, hi].
func NewPolynomial(coeffs []*Parameter, lo, hi float64) Density {
	return pdf.NewPolynomial(coeffs, lo, hi)
}

// Compose builds a mixture model from weighted component terms.
func Compose(terms []Term) (*Mixture, error) {
	return pdf.Compose(terms)
}

// NewObjective builds the fit objective an external minimizer drives.
func NewObjective(m *Mixture, data *Dataset, opts ...Option) (*Objective, error) {
	return nllfit.New(m, data, opts...)
}

// ReferenceModel builds the standard five-component benchmark mixture.
func ReferenceModel(nEvents int) (*Mixture, error) {
	return nllfit.ReferenceModel(nEvents)
}

// Generate samples a dataset from a mixture with an explicit seeded source.
func Generate(m *Mixture, n int, rng *rand.Rand) (*Dataset, error) {
	return dataset.Generate(m, n, rng)
}

// DetectStrategy picks the fastest always-available strategy for this CPU.
func DetectStrategy() Strategy {
	return nllfit.DetectStrategy()
}
