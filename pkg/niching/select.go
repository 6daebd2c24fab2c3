package niching

import (
	"gonum.org/v1/gonum/mat"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/errors"
)

// DefaultEpsilon is the clearing radius used when callers have no
// problem-specific value.
const DefaultEpsilon = 0.05

// ScoreFunc picks the best individual from a candidate sub-population and
// returns its index within that sub-population. Tie-break behavior is owned
// by the scorer; SelectByObjective keeps the first occurrence.
type ScoreFunc func(pop *core.Population) int

// SelectByObjective returns the index of the individual with the smallest
// first objective value.
func SelectByObjective(pop *core.Population) int {
	best := 0
	bestF := pop.At(0).F[0]
	for i := 1; i < pop.Len(); i++ {
		if f := pop.At(i).F[0]; f < bestF {
			best = i
			bestF = f
		}
	}
	return best
}

// SelectByClearing greedily picks nSelect indices from pop, clearing an
// epsilon-neighborhood of the distance matrix d around every pick. When the
// eligible pool runs dry before nSelect picks were made, the clearing state
// is reset so points excluded only by proximity become eligible again.
//
// nSelect must not exceed the population size; once every index has been
// selected no reset can make progress.
func SelectByClearing(pop *core.Population, d mat.Matrix, nSelect int, score ScoreFunc, epsilon float64) ([]int, error) {
	r, _ := d.Dims()
	if pop.Len() != r {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "population size does not match distance matrix"),
			errors.Fields{"population": pop.Len(), "matrix": r})
	}
	if nSelect > pop.Len() {
		return nil, errors.WithFields(
			errors.New(errors.SelectionConflict, "cannot select more points than the population holds"),
			errors.Fields{"n_select": nSelect, "population": pop.Len()})
	}

	clearing := NewEpsilonClearing(d, epsilon)

	for len(clearing.selected) < nSelect {
		remaining := clearing.Remaining()
		if len(remaining) == 0 {
			clearing.Reset()
			remaining = clearing.Remaining()
		}

		best := remaining[score(pop.Select(remaining))]
		clearing.Select(best)
	}

	return clearing.Selected(), nil
}
