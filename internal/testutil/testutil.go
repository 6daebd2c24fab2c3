// Package testutil provides small problems, strategies and mocks shared by
// the package tests.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/engine"
)

// FuncProblem adapts a plain function to core.Problem.
type FuncProblem struct {
	Objectives  int
	Constraints int
	EvalFn      func(ctx context.Context, X [][]float64) (*core.Evaluation, error)
}

func (p *FuncProblem) NumObjectives() int  { return p.Objectives }
func (p *FuncProblem) NumConstraints() int { return p.Constraints }

func (p *FuncProblem) Evaluate(ctx context.Context, X [][]float64) (*core.Evaluation, error) {
	return p.EvalFn(ctx, X)
}

// NewSphereProblem returns an unconstrained single-objective problem
// minimizing the squared norm of x.
func NewSphereProblem() *FuncProblem {
	return &FuncProblem{
		Objectives: 1,
		EvalFn: func(_ context.Context, X [][]float64) (*core.Evaluation, error) {
			F := make([][]float64, len(X))
			for i, x := range X {
				var sum float64
				for _, v := range x {
					sum += v * v
				}
				F[i] = []float64{sum}
			}
			return &core.Evaluation{F: F}, nil
		},
	}
}

// NewBiObjectiveProblem returns an unconstrained bi-objective problem with
// conflicting goals: distance to the origin and distance to the all-ones
// point. Its Pareto set is the segment between the two anchors.
func NewBiObjectiveProblem() *FuncProblem {
	return &FuncProblem{
		Objectives: 2,
		EvalFn: func(_ context.Context, X [][]float64) (*core.Evaluation, error) {
			F := make([][]float64, len(X))
			for i, x := range X {
				var f1, f2 float64
				for _, v := range x {
					f1 += v * v
					f2 += (v - 1) * (v - 1)
				}
				F[i] = []float64{f1, f2}
			}
			return &core.Evaluation{F: F}, nil
		},
	}
}

// RandomSearch is a minimal strategy: every generation it samples a fresh
// population uniformly from [Lower, Upper] and evaluates it. Enough to
// exercise the driver loop deterministically under a fixed seed.
type RandomSearch struct {
	PopSize int
	Dim     int
	Lower   float64
	Upper   float64
}

func (s *RandomSearch) sample(eng *engine.Engine) *core.Population {
	rng := eng.RNG()
	X := make([][]float64, s.PopSize)
	for i := range X {
		x := make([]float64, s.Dim)
		for d := range x {
			x[d] = s.Lower + rng.Float64()*(s.Upper-s.Lower)
		}
		X[i] = x
	}
	return core.NewPopulationFromX(X)
}

func (s *RandomSearch) Initialize(ctx context.Context, eng *engine.Engine) (*core.Population, error) {
	pop := s.sample(eng)
	if err := eng.EnsureEvaluated(ctx, pop); err != nil {
		return nil, err
	}
	return pop, nil
}

func (s *RandomSearch) Advance(ctx context.Context, eng *engine.Engine) (*core.Population, error) {
	pop := s.sample(eng)
	if err := eng.EnsureEvaluated(ctx, pop); err != nil {
		return nil, err
	}
	return pop, nil
}

func (s *RandomSearch) Finalize(ctx context.Context, eng *engine.Engine) error {
	return nil
}

// MockTermination is a testify mock for core.Termination.
type MockTermination struct {
	mock.Mock
}

func (m *MockTermination) Continue(state core.RunState) bool {
	args := m.Called(state)
	return args.Bool(0)
}

// CountingCallback records how many times it was invoked and the generation
// at each invocation.
type CountingCallback struct {
	Generations []int
}

func (c *CountingCallback) Func() core.Callback {
	return func(state core.RunState) {
		c.Generations = append(c.Generations, state.Generation())
	}
}
