package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hepstats/fitbench/pkg/pdf"
)

// Generate samples n events from the mixture at its current parameter
// values: each event picks a component with probability proportional to its
// coefficient, then draws from that component's distribution. The generator
// is passed explicitly so a fixed seed reproduces the exact dataset.
func Generate(m *pdf.Mixture, n int, rng *rand.Rand) (*Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate: event count must be positive, got %d", n)
	}
	terms := m.Terms()
	total := m.CoefficientSum()
	if total <= 0 {
		return nil, &pdf.InvalidModelError{Reason: "coefficient sum must be positive to generate events"}
	}

	values := make([]float64, n)
	for i := range values {
		// Pick a component by walking the cumulative coefficients.
		u := rng.Float64() * total
		term := terms[len(terms)-1]
		for _, t := range terms {
			u -= t.Coefficient.Value
			if u < 0 {
				term = t
				break
			}
		}

		v, err := sample(term.Density, rng)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return &Dataset{values: values}, nil
}

// sample draws one event from a single component density.
func sample(d pdf.Density, rng *rand.Rand) (float64, error) {
	switch d := d.(type) {
	case *pdf.Gaussian:
		return distuv.Normal{Mu: d.Mean.Value, Sigma: d.Sigma.Value, Src: rng}.Rand(), nil
	case *pdf.Gamma:
		// gonum parameterizes by rate; our scale is 1/rate.
		g := distuv.Gamma{Alpha: d.Shape.Value, Beta: 1 / d.Scale.Value, Src: rng}
		return g.Rand() + d.Shift.Value, nil
	case *pdf.Exponential:
		return distuv.Exponential{Rate: d.Rate.Value, Src: rng}.Rand(), nil
	case *pdf.Polynomial:
		return samplePolynomial(d, rng)
	default:
		return 0, fmt.Errorf("generate: no sampler for density %T", d)
	}
}

// samplePolynomial rejection-samples the polynomial over its range under a
// flat envelope. The envelope height comes from a coarse scan, padded so grid
// points straddling the true maximum still dominate it.
func samplePolynomial(p *pdf.Polynomial, rng *rand.Rand) (float64, error) {
	const gridPoints = 256

	span := p.Hi - p.Lo
	maxVal := 0.0
	for i := 0; i <= gridPoints; i++ {
		v := p.Evaluate(p.Lo + span*float64(i)/gridPoints)
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 0, &pdf.InvalidModelError{Reason: "polynomial is non-positive over its whole range"}
	}
	envelope := maxVal * 1.05

	// The acceptance rate for any sane benchmark polynomial is well above
	// 1/2; the iteration cap only guards against pathological shapes.
	for tries := 0; tries < 10000; tries++ {
		x := p.Lo + rng.Float64()*span
		if rng.Float64()*envelope <= p.Evaluate(x) {
			return x, nil
		}
	}
	return 0, fmt.Errorf("generate: polynomial rejection sampling did not converge")
}
