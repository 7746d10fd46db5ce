// Package pdf provides the parametric density families and mixture models
// evaluated by the fit engine.
package pdf

import "golang.org/x/exp/rand"

// Parameter is a named fit parameter with allowed bounds.
//
// Parameters are owned by the model graph and mutated between evaluations by
// whoever drives the fit (normally the objective adapter on behalf of the
// minimizer). Keeping Value inside [Min, Max] is the mutator's responsibility;
// the densities themselves never enforce bounds.
type Parameter struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

// NewParameter creates a parameter with an initial value and bounds.
func NewParameter(name string, value, min, max float64) *Parameter {
	return &Parameter{Name: name, Value: value, Min: min, Max: max}
}

// NewConstParameter creates a parameter fixed at a single value.
func NewConstParameter(name string, value float64) *Parameter {
	return &Parameter{Name: name, Value: value, Min: value, Max: value}
}

// RandomizeParameters sets every parameter to a uniform draw within its bounds.
// The generator is passed explicitly so benchmark runs are reproducible.
func RandomizeParameters(params []*Parameter, rng *rand.Rand) {
	for _, p := range params {
		p.Value = p.Min + rng.Float64()*(p.Max-p.Min)
	}
}
