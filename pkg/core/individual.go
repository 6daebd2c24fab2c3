package core

// Individual represents a single candidate solution in an optimization run.
//
// X is the decision vector, F the objective vector, G the raw constraint
// values and CV the aggregated constraint violation. F stays nil until an
// evaluator has processed the individual; after evaluation the fields are
// only rewritten by an evaluator, never mutated in place by strategies.
type Individual struct {
	X  []float64
	F  []float64
	G  []float64
	CV float64
}

// NewIndividual creates an unevaluated individual from a decision vector.
func NewIndividual(x []float64) *Individual {
	return &Individual{X: x}
}

// Evaluated reports whether the individual has an objective vector assigned.
func (ind *Individual) Evaluated() bool {
	return ind.F != nil
}

// Feasible reports whether the individual satisfies all constraints. An
// individual with no constraint violation recorded (CV <= 0) is feasible;
// unevaluated individuals are never feasible.
func (ind *Individual) Feasible() bool {
	return ind.Evaluated() && ind.CV <= 0
}

// Copy returns a deep copy of the individual.
func (ind *Individual) Copy() *Individual {
	dup := &Individual{CV: ind.CV}
	if ind.X != nil {
		dup.X = append([]float64(nil), ind.X...)
	}
	if ind.F != nil {
		dup.F = append([]float64(nil), ind.F...)
	}
	if ind.G != nil {
		dup.G = append([]float64(nil), ind.G...)
	}
	return dup
}
