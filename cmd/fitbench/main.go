// Command fitbench benchmarks the batched likelihood engine under a
// realistic fit workload: a five-component mixture over 100k events, fitted
// repeatedly by an external minimizer while the engine prices every proposed
// parameter vector. Strategies are cross-checked for agreement before any
// throughput number is reported.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"

	"github.com/hepstats/fitbench/pkg/dataset"
	"github.com/hepstats/fitbench/pkg/nllfit"
	"github.com/hepstats/fitbench/pkg/pdf"
)

var (
	events    = flag.Int("events", 100000, "Number of observations in the dataset")
	strategy  = flag.String("strategy", "auto", "Execution strategy: scalar, vector, accel or auto")
	mode      = flag.String("mode", "extended", "Likelihood mode: extended or probability")
	minimizer = flag.String("minimizer", "neldermead", "Minimizer: neldermead or lbfgs")
	fits      = flag.Int("fits", 3, "Number of fit repetitions")
	seed      = flag.Uint64("seed", 1337, "Seed for dataset generation and parameter randomization")
	threads   = flag.Int("threads", 0, "Vector-strategy worker count (0 = auto)")
	dataPath  = flag.String("data", "", "Load observations from a dataset file instead of generating")
	saveData  = flag.String("save-data", "", "Save the generated dataset to this path")
	randomize = flag.Bool("randomize", false, "Randomize parameters within bounds before each fit")
	check     = flag.Bool("check", true, "Cross-check the strategy against the scalar oracle first")
	verbose   = flag.Bool("verbose", false, "Verbose engine logging")
	cpuProf   = flag.String("cpuprofile", "", "Write CPU profile to file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Benchmark batched likelihood evaluation under an iterative fit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Scalar reference run\n")
		fmt.Fprintf(os.Stderr, "  %s -strategy scalar -fits 3\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Vector strategy, reusing a saved dataset\n")
		fmt.Fprintf(os.Stderr, "  %s -strategy vector -data events.fitd\n", os.Args[0])
	}
	flag.Parse()

	strat, err := nllfit.ParseStrategy(*strategy)
	if err != nil {
		log.Fatalf("fitbench: %v", err)
	}
	likeMode, err := parseMode(*mode)
	if err != nil {
		log.Fatalf("fitbench: %v", err)
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatalf("fitbench: create cpu profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("fitbench: start cpu profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	model, err := nllfit.ReferenceModel(*events)
	if err != nil {
		log.Fatalf("fitbench: build model: %v", err)
	}

	data, err := loadOrGenerate(model)
	if err != nil {
		log.Fatalf("fitbench: %v", err)
	}
	fmt.Printf("dataset: %d events\n", data.Len())
	fmt.Printf("strategy: %s, mode: %s, minimizer: %s\n", strat, likeMode, *minimizer)

	obj, err := nllfit.New(model, data,
		nllfit.WithStrategy(strat),
		nllfit.WithMode(likeMode),
		nllfit.WithThreads(*threads),
		nllfit.WithVerbose(*verbose),
	)
	if err != nil {
		log.Fatalf("fitbench: build objective: %v", err)
	}
	defer obj.Close()

	truth := obj.ParameterVector(nil)

	if *check && strat != nllfit.StrategyScalar {
		if err := crossCheck(model, data, obj, truth, likeMode); err != nil {
			log.Fatalf("fitbench: %v", err)
		}
	}

	runFits(obj, truth)
}

// loadOrGenerate returns the benchmark dataset, from file when -data is set,
// otherwise freshly sampled from the model at its truth parameters.
func loadOrGenerate(model *pdf.Mixture) (*dataset.Dataset, error) {
	if *dataPath != "" {
		data, err := dataset.Load(*dataPath)
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	rng := rand.New(rand.NewSource(*seed))
	data, err := dataset.Generate(model, *events, rng)
	if err != nil {
		return nil, err
	}
	if *saveData != "" {
		if err := data.Save(*saveData); err != nil {
			return nil, err
		}
		fmt.Printf("dataset saved to %s\n", *saveData)
	}
	return data, nil
}

// crossCheck compares the selected strategy's NLL against the scalar oracle
// at the truth parameters. Throughput numbers mean nothing if the strategies
// disagree, so a violation is fatal.
func crossCheck(model *pdf.Mixture, data *dataset.Dataset, obj *nllfit.Objective, truth []float64, likeMode nllfit.Mode) error {
	const tolerance = 1e-6

	oracle, err := nllfit.New(model, data,
		nllfit.WithStrategy(nllfit.StrategyScalar),
		nllfit.WithMode(likeMode),
	)
	if err != nil {
		return err
	}

	want, err := oracle.Evaluate(truth)
	if err != nil {
		return err
	}
	got, err := obj.Evaluate(truth)
	if err != nil {
		return err
	}

	rel := math.Abs(got.NLL-want.NLL) / math.Max(math.Abs(want.NLL), 1)
	if rel > tolerance {
		return fmt.Errorf("cross-check failed: scalar NLL %.10g vs %s NLL %.10g (rel %g > %g)",
			want.NLL, obj.Strategy(), got.NLL, rel, tolerance)
	}
	fmt.Printf("cross-check: scalar vs %s agree, rel diff %.3g\n", obj.Strategy(), rel)
	return nil
}

// runFits drives the minimizer over the objective and reports timing.
func runFits(obj *nllfit.Objective, truth []float64) {
	evals := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			res, err := obj.Evaluate(x)
			if err != nil {
				log.Fatalf("fitbench: evaluate: %v", err)
			}
			evals++
			return res.NLL
		},
	}

	var method optimize.Method
	switch *minimizer {
	case "neldermead":
		method = &optimize.NelderMead{}
	case "lbfgs":
		problem.Grad = func(grad, x []float64) {
			if _, err := obj.EvaluateWithGradient(x, grad); err != nil {
				log.Fatalf("fitbench: gradient: %v", err)
			}
			evals += 2 * len(x)
		}
		method = &optimize.LBFGS{}
	default:
		log.Fatalf("fitbench: unknown minimizer %q (want neldermead or lbfgs)", *minimizer)
	}

	rng := rand.New(rand.NewSource(*seed + 1))
	totalWall := time.Duration(0)
	totalCPU := time.Duration(0)
	totalEvals := 0

	for i := 0; i < *fits; i++ {
		// Each fit starts from the same place: the truth values, optionally
		// smeared uniformly within bounds.
		x0 := append([]float64(nil), truth...)
		if *randomize {
			pdf.RandomizeParameters(obj.Parameters(), rng)
			x0 = obj.ParameterVector(x0)
		}

		evals = 0
		wallStart := time.Now()
		cpuStart := cpuTimeNow()

		result, err := optimize.Minimize(problem, x0, nil, method)

		wall := time.Since(wallStart)
		cpu := cpuTimeNow() - cpuStart

		if err != nil {
			fmt.Printf("fit %d: minimizer stopped early: %v\n", i+1, err)
		}
		status := "?"
		finalNLL := math.NaN()
		if result != nil {
			status = result.Status.String()
			finalNLL = result.F
		}
		fmt.Printf("fit %d: NLL=%.6f status=%s evals=%d wall=%v cpu=%v (%.0f evals/s)\n",
			i+1, finalNLL, status, evals, wall.Round(time.Millisecond), cpu.Round(time.Millisecond),
			float64(evals)/wall.Seconds())

		totalWall += wall
		totalCPU += cpu
		totalEvals += evals
	}

	fmt.Printf("\ntotal: %d fits, %d objective evaluations, wall %v, cpu %v\n",
		*fits, totalEvals, totalWall.Round(time.Millisecond), totalCPU.Round(time.Millisecond))
	if totalWall > 0 {
		perEval := totalWall / time.Duration(max(totalEvals, 1))
		fmt.Printf("mean objective evaluation: %v (%.1f Mevents/s)\n",
			perEval.Round(time.Microsecond),
			float64(*events)/perEval.Seconds()/1e6)
	}
}

func parseMode(s string) (nllfit.Mode, error) {
	switch s {
	case "extended":
		return nllfit.ModeExtendedLikelihood, nil
	case "probability", "prob":
		return nllfit.ModeProbability, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want extended or probability)", s)
	}
}
