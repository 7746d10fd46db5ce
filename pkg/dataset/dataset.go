// Package dataset holds the observation arrays the fit engine evaluates
// over, plus event generation and a small on-disk format so benchmark runs
// can reuse one dataset.
package dataset

// Dataset is an immutable ordered array of scalar observations. It is built
// once per run and shared read-only across all evaluation strategies, worker
// goroutines and optimizer iterations; nothing in this module mutates it
// after construction.
type Dataset struct {
	values []float64
}

// New wraps values in a Dataset. The slice is owned by the dataset from this
// point on; callers must not modify it afterwards.
func New(values []float64) *Dataset {
	return &Dataset{values: values}
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.values)
}

// Values returns the underlying observation slice, shared read-only.
func (d *Dataset) Values() []float64 {
	return d.values
}
