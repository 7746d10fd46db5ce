package nllfit

import (
	"log"
	"math"

	"github.com/hepstats/fitbench/pkg/dataset"
	"github.com/hepstats/fitbench/pkg/pdf"
)

// gradEps scales the central-difference step of EvaluateWithGradient:
// h = gradEps * max(|value|, 1).
const gradEps = 1e-6

// Objective is the fit-objective adapter: the single entry point an external
// minimizer calls per iteration. It binds (model, dataset, strategy, mode)
// once at construction; per call only the parameter values change, and all
// evaluation buffers are reused, so it is safe to drive many thousands of
// times in a tight loop without allocating.
//
// An Objective is not reentrant: concurrent callers must each own their own
// instance (and their own parameter objects).
type Objective struct {
	mix    *pdf.Mixture
	params []*pdf.Parameter
	xs     []float64
	opts   Options

	dens []float64 // per-event mixture densities
	comp []float64 // vector-strategy component scratch

	batch DeviceBatch // non-nil iff strategy == StrategyAccelerator
}

// New builds an Objective over a composed mixture and a dataset. The dataset
// must be non-empty; the accelerator strategy additionally requires a
// registered device, whose observation upload happens here, once.
func New(m *pdf.Mixture, data *dataset.Dataset, opts ...Option) (*Objective, error) {
	if m == nil {
		return nil, &pdf.InvalidModelError{Reason: "nil mixture"}
	}
	if data == nil || data.Len() == 0 {
		return nil, &ShapeMismatchError{Reason: "empty observation array"}
	}

	o := &Objective{
		mix:    m,
		params: m.Parameters(),
		xs:     data.Values(),
		opts:   buildOptions(opts),
		dens:   make([]float64, data.Len()),
	}

	switch o.opts.Strategy {
	case StrategyScalar:
	case StrategyVectorBatch:
		o.comp = make([]float64, data.Len())
	case StrategyAccelerator:
		dev, ok := registeredDevice()
		if !ok {
			return nil, &StrategyUnavailableError{Strategy: StrategyAccelerator}
		}
		batch, err := dev.Bind(o.xs)
		if err != nil {
			return nil, err
		}
		o.batch = batch
		if o.opts.Verbose {
			log.Printf("nllfit: observations bound to device %s", dev.Name())
		}
	default:
		return nil, &StrategyUnavailableError{Strategy: o.opts.Strategy}
	}

	if o.opts.Verbose {
		log.Printf("nllfit: objective ready: %d events, %d parameters, strategy=%s mode=%s",
			data.Len(), len(o.params), o.opts.Strategy, o.opts.Mode)
	}
	return o, nil
}

// Close releases any device binding. It is a no-op for CPU strategies.
func (o *Objective) Close() error {
	if o.batch != nil {
		err := o.batch.Close()
		o.batch = nil
		return err
	}
	return nil
}

// NumParameters returns the length of the expected parameter vector.
func (o *Objective) NumParameters() int {
	return len(o.params)
}

// Parameters returns the bound parameters in vector order.
func (o *Objective) Parameters() []*pdf.Parameter {
	return o.params
}

// ParameterVector fills dst with the current parameter values (or allocates
// when dst is nil) and returns it. Handy for seeding a minimizer from the
// model's current state.
func (o *Objective) ParameterVector(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(o.params))
	}
	for i, p := range o.params {
		dst[i] = p.Value
	}
	return dst
}

// Strategy returns the execution strategy this objective was built with.
func (o *Objective) Strategy() Strategy {
	return o.opts.Strategy
}

// Evaluate binds x positionally onto the model's parameters and returns the
// negative log-likelihood. A nil x evaluates at the parameters' current
// values without rebinding.
func (o *Objective) Evaluate(x []float64) (Result, error) {
	if x != nil {
		if err := o.bind(x); err != nil {
			return Result{}, err
		}
	}
	return o.evaluateCurrent()
}

// EvaluateWithGradient is Evaluate plus a central-difference gradient with
// respect to every parameter, written into grad (which must have
// NumParameters length). Costs 2*NumParameters extra objective evaluations.
func (o *Objective) EvaluateWithGradient(x, grad []float64) (Result, error) {
	if len(grad) != len(o.params) {
		return Result{}, &ShapeMismatchError{Reason: "gradient length does not match parameter count"}
	}

	res, err := o.Evaluate(x)
	if err != nil {
		return Result{}, err
	}

	for j, p := range o.params {
		v := p.Value
		h := gradEps * math.Max(math.Abs(v), 1)

		p.Value = v + h
		plus, err := o.evaluateCurrent()
		if err != nil {
			p.Value = v
			return Result{}, err
		}

		p.Value = v - h
		minus, err := o.evaluateCurrent()
		p.Value = v
		if err != nil {
			return Result{}, err
		}

		grad[j] = (plus.NLL - minus.NLL) / (2 * h)
	}

	res.Gradient = grad
	return res, nil
}

// bind writes x onto the parameters in vector order.
func (o *Objective) bind(x []float64) error {
	if len(x) != len(o.params) {
		return &ShapeMismatchError{Reason: "parameter vector length does not match model"}
	}
	for i, p := range o.params {
		p.Value = x[i]
	}
	return nil
}

// evaluateCurrent runs the batch evaluation and reduction at the parameters'
// current values, reusing the objective's buffers.
func (o *Objective) evaluateCurrent() (Result, error) {
	switch o.opts.Strategy {
	case StrategyScalar:
		evaluateScalar(o.mix, o.xs, o.dens)
	case StrategyVectorBatch:
		evaluateVector(o.mix, o.xs, o.dens, o.comp, autoThreads(o.opts.Threads))
	case StrategyAccelerator:
		if o.batch == nil {
			return Result{}, &StrategyUnavailableError{Strategy: StrategyAccelerator}
		}
		if err := o.batch.Evaluate(o.mix, o.dens); err != nil {
			return Result{}, err
		}
	}

	res := Reduce(o.dens, o.opts.Mode, o.mix.CoefficientSum(), o.opts.Strategy, o.opts.Floor)
	if o.opts.Verbose && res.Clamped > 0 {
		log.Printf("nllfit: %d of %d events clamped at density floor", res.Clamped, len(o.xs))
	}
	return res, nil
}
