package engine

import (
	"context"

	"github.com/XiaoConstantine/moea-go/pkg/core"
)

// Strategy is the capability interface every concrete optimization strategy
// implements. The engine owns the generational loop and never inspects
// strategy internals; strategies produce populations and may read the engine
// state (RNG, problem, evaluator, current population) through the engine
// passed to each hook.
type Strategy interface {
	// Initialize creates and returns the first population.
	Initialize(ctx context.Context, eng *Engine) (*core.Population, error)

	// Advance produces the next generation's population.
	Advance(ctx context.Context, eng *Engine) (*core.Population, error)

	// Finalize runs once after the termination predicate stops the loop.
	Finalize(ctx context.Context, eng *Engine) error
}

// DefaultTerminationProvider is implemented by strategies that carry their
// own stopping condition. The engine falls back to it when the caller did
// not supply a termination explicitly.
type DefaultTerminationProvider interface {
	DefaultTermination() core.Termination
}
