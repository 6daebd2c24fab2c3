package core

import "context"

// Evaluation holds the batched output of a problem evaluation. F has one row
// of objective values per decision vector. G carries the raw constraint
// values and is nil for unconstrained problems.
type Evaluation struct {
	F [][]float64
	G [][]float64
}

// Problem describes an optimization problem that evaluates batches of
// decision vectors.
type Problem interface {
	// NumObjectives returns the number of objectives.
	NumObjectives() int

	// NumConstraints returns the number of inequality constraints. Zero
	// means the problem is unconstrained.
	NumConstraints() int

	// Evaluate computes objective and constraint values for a batch of
	// decision vectors, one row per vector.
	Evaluate(ctx context.Context, X [][]float64) (*Evaluation, error)
}
