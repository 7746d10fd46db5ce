package pdf

import "fmt"

// Term pairs a component density with its mixture coefficient.
//
// In an extended-likelihood model the coefficients are event yields; their sum
// is the expected total event count. A coefficient parameter must not double
// as a shape parameter of the density it weights: both roles are representable
// in the graph, but mixing them inside one term makes the model ambiguous and
// is rejected by Compose.
type Term struct {
	Density     Density
	Coefficient *Parameter
}

// Mixture is an ordered weighted sum of component densities. It is built once
// by Compose and immutable afterwards; only the parameter values change
// between evaluations.
type Mixture struct {
	terms  []Term
	params []*Parameter
}

// InvalidModelError reports a malformed mixture composition. It is surfaced
// at model-build time, never from the evaluation hot path.
type InvalidModelError struct {
	Reason string
}

func (e *InvalidModelError) Error() string {
	return "invalid model: " + e.Reason
}

// Compose validates the terms and builds a mixture model.
func Compose(terms []Term) (*Mixture, error) {
	if len(terms) == 0 {
		return nil, &InvalidModelError{Reason: "mixture needs at least one component"}
	}
	for i, t := range terms {
		if t.Density == nil {
			return nil, &InvalidModelError{Reason: fmt.Sprintf("nil density in term %d", i)}
		}
		if t.Coefficient == nil {
			return nil, &InvalidModelError{Reason: fmt.Sprintf("nil coefficient in term %d", i)}
		}
		for _, p := range t.Density.Parameters() {
			if p == t.Coefficient {
				return nil, &InvalidModelError{
					Reason: fmt.Sprintf("parameter %q used as both coefficient and shape parameter of term %d", p.Name, i),
				}
			}
		}
	}

	m := &Mixture{terms: append([]Term(nil), terms...)}

	// Flatten the parameter list in a fixed order: each term's shape
	// parameters followed by its coefficient, deduplicated by identity so a
	// parameter shared between components binds to a single vector slot.
	seen := make(map[*Parameter]bool)
	for _, t := range m.terms {
		for _, p := range t.Density.Parameters() {
			if !seen[p] {
				seen[p] = true
				m.params = append(m.params, p)
			}
		}
		if !seen[t.Coefficient] {
			seen[t.Coefficient] = true
			m.params = append(m.params, t.Coefficient)
		}
	}
	return m, nil
}

// Terms returns the ordered component terms.
func (m *Mixture) Terms() []Term {
	return m.terms
}

// Parameters returns all distinct parameters in binding order. The order is
// fixed at composition time; objective adapters bind vectors positionally
// against it.
func (m *Mixture) Parameters() []*Parameter {
	return m.params
}

// CoefficientSum returns the sum of all coefficient values: the expected
// event count when the mixture is used as an extended-likelihood model.
func (m *Mixture) CoefficientSum() float64 {
	s := 0.0
	for _, t := range m.terms {
		s += t.Coefficient.Value
	}
	return s
}

// Evaluate returns the raw weighted sum of component densities at x.
// Probability-mode normalization (division by CoefficientSum) is applied by
// the reducer, not here.
func (m *Mixture) Evaluate(x float64) float64 {
	s := 0.0
	for _, t := range m.terms {
		s += t.Coefficient.Value * t.Density.Evaluate(x)
	}
	return s
}
