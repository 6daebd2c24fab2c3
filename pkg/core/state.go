package core

import "time"

// RunState is the read view of a running driver handed to terminations,
// callbacks and display functions.
type RunState interface {
	// Generation returns the current generation counter, starting at 1.
	Generation() int

	// Evaluations returns the number of problem evaluations so far.
	Evaluations() int

	// Population returns the current population.
	Population() *Population

	// Problem returns the problem being optimized.
	Problem() Problem

	// StartedAt returns the wall-clock time the run started.
	StartedAt() time.Time
}

// Callback is invoked once per generation with the live run state. It may
// have arbitrary side effects; its return is ignored and it must not be
// assumed pure.
type Callback func(state RunState)
