package core

import "context"

// Evaluator dispatches individuals to a problem for evaluation and keeps a
// running count of evaluations performed. The driver hands it the subset of
// the population that still lacks objective values, together with the live
// run state for bookkeeping.
type Evaluator interface {
	// Eval evaluates all individuals of pop against the problem, writing
	// F, G and CV back onto each individual.
	Eval(ctx context.Context, problem Problem, pop *Population, state RunState) error

	// Count returns the number of evaluations performed so far.
	Count() int
}
