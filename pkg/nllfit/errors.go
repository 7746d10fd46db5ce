package nllfit

import "fmt"

// StrategyUnavailableError reports that a requested execution strategy is not
// present in this build/process. The caller should pick another strategy; the
// engine never substitutes one silently.
type StrategyUnavailableError struct {
	Strategy Strategy
}

func (e *StrategyUnavailableError) Error() string {
	return fmt.Sprintf("strategy %s is not available", e.Strategy)
}

// ShapeMismatchError reports an observation/parameter array length
// inconsistency. It always indicates a caller bug, not a data problem.
type ShapeMismatchError struct {
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	return "shape mismatch: " + e.Reason
}
