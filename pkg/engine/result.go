package engine

import (
	"context"
	"time"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/logging"
)

// Result is the terminal snapshot of one run. X, F, CV and G describe the
// extracted optimal set and are nil when no feasible individual existed;
// that state is not an error, NoFeasibleFound marks it.
type Result struct {
	RunID string
	Seed  int64

	// Optimal set, one row per member. Nil when NoFeasibleFound is true.
	X  [][]float64
	F  [][]float64
	CV []float64
	G  [][]float64

	NoFeasibleFound bool

	// Optimal is the extracted subset as a population view; nil when no
	// feasible individual existed.
	Optimal *core.Population

	Population  *core.Population
	Problem     core.Problem
	ParetoFront [][]float64
	History     []*Snapshot

	Generations int
	Evaluations int
	Started     time.Time
	Elapsed     time.Duration
}

// buildResult extracts the optimal set from the final population and
// assembles the Result.
func (e *Engine) buildResult(ctx context.Context) (*Result, error) {
	// Nothing feeding extraction may carry missing objectives.
	if err := e.EnsureEvaluated(ctx, e.pop); err != nil {
		return nil, err
	}

	base := e.opt
	if base == nil {
		base = e.pop
	}
	optimal := e.extractOptimal(ctx, base)

	result := &Result{
		RunID:           e.runID,
		Seed:            e.seed,
		NoFeasibleFound: optimal == nil,
		Optimal:         optimal,
		Population:      e.pop,
		Problem:         e.problem,
		ParetoFront:     e.pf,
		History:         e.history,
		Generations:     e.generation,
		Evaluations:     e.evaluator.Count(),
		Started:         e.started,
		Elapsed:         time.Since(e.started),
	}

	if optimal != nil {
		result.X = optimal.Decisions()
		result.F = optimal.Objectives()
		result.CV = optimal.Violations()
		result.G = optimal.ConstraintValues()
	}
	return result, nil
}

// extractOptimal filters base to feasible individuals and reduces them to
// the optimal set: the non-dominated front for multi-objective problems, the
// stable argmin of the single objective otherwise. Returns nil when no
// feasible individual exists.
func (e *Engine) extractOptimal(ctx context.Context, base *core.Population) *core.Population {
	feasible := base.Select(base.FeasibleIndices())
	if feasible.Len() == 0 {
		logging.GetLogger().Warn(ctx, "No feasible solution found in %d candidates", base.Len())
		return nil
	}

	if e.problem.NumObjectives() > 1 {
		front := e.sorter.FirstFront(feasible.Objectives())
		return feasible.Select(front)
	}

	// Single objective: stable argmin over the feasible pool, first
	// occurrence wins ties. Deliberately not routed through the sorter so
	// the one-dimensional tie-break stays observable.
	best := 0
	bestF := feasible.At(0).F[0]
	for i := 1; i < feasible.Len(); i++ {
		if f := feasible.At(i).F[0]; f < bestF {
			best = i
			bestF = f
		}
	}
	return feasible.Select([]int{best})
}
