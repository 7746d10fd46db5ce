package nllfit

import "github.com/hepstats/fitbench/pkg/pdf"

// ReferenceModel builds the standard five-component benchmark mixture over
// x in [0, 20]:
//
//	ns1*Gamma(x; 20, 0.5, 0) + ns2*Gauss(x; 10, 2) + ng2*Gauss(x; 5, 0.3) +
//	ng3*Gauss(x; 15, 0.4) + npol*Poly(x; -0.01)
//
// with yields (0.2, 0.3, 0.1, 0.1, 0.3)*nEvents, so the coefficient sum is
// the expected event count for extended-likelihood fits. This is the fixed
// workload the benchmark harness drives across strategies.
func ReferenceModel(nEvents int) (*pdf.Mixture, error) {
	ne := float64(nEvents)

	gamma := pdf.NewGamma(
		pdf.NewParameter("g", 20, 0.1, 40),
		pdf.NewParameter("b", 0.5, 0.01, 10),
		pdf.NewConstParameter("m0", 0),
	)
	g1 := pdf.NewGaussian(
		pdf.NewParameter("m1", 10, 0, 20),
		pdf.NewParameter("s1", 2, 0.1, 10),
	)
	g2 := pdf.NewGaussian(
		pdf.NewParameter("m2", 5, 0, 20),
		pdf.NewParameter("s2", 0.3, 0.01, 10),
	)
	g3 := pdf.NewGaussian(
		pdf.NewParameter("m3", 15, 0, 20),
		pdf.NewParameter("s3", 0.4, 0.01, 10),
	)
	pol := pdf.NewPolynomial(
		[]*pdf.Parameter{pdf.NewParameter("a", -0.01, -0.05, 0.1)},
		0, 20,
	)

	return pdf.Compose([]pdf.Term{
		{Density: gamma, Coefficient: pdf.NewParameter("ns1", 0.2*ne, 0, 1e9)},
		{Density: g1, Coefficient: pdf.NewParameter("ns2", 0.3*ne, 0, 1e10)},
		{Density: g2, Coefficient: pdf.NewParameter("ng2", 0.1*ne, 0, 1e9)},
		{Density: g3, Coefficient: pdf.NewParameter("ng3", 0.1*ne, 0, 1e10)},
		{Density: pol, Coefficient: pdf.NewParameter("npol", 0.3*ne, 0, 1e10)},
	})
}
