// Package moea is the control core of a multi-objective evolutionary
// optimization framework: a generational driver loop over user-supplied
// problems and strategies, plus the niching primitives diversity-preserving
// selection is built on.
//
// Key Components:
//
//   - Core: Fundamental abstractions like Problem, Population, Individual,
//     Evaluator and Termination shared by every run.
//
//   - Engine: The generational loop. It seeds randomness, initializes a
//     population through the strategy hooks, advances generations until a
//     termination predicate stops it, keeps optional history snapshots and
//     extracts the optimal (Pareto) set from the final population.
//
//   - Niching: Epsilon-clearing over a pairwise distance matrix, the greedy
//     building block behind diversity-enforcing selection.
//
//   - NDS: A default non-dominated sorting oracle used during optimal-set
//     extraction; swappable through the core.Sorter interface.
//
//   - Termination, Evaluation, Config: Stock stopping criteria, the default
//     counting evaluator and YAML-backed run configuration.
//
// A minimal run wires a strategy and a problem into an engine:
//
//	eng := engine.New(myStrategy,
//		engine.WithSeed(42),
//		engine.WithTermination(termination.NewMaxGenerations(50)),
//		engine.WithSaveHistory(true),
//	)
//	res, err := eng.Run(ctx, myProblem)
//
// The returned Result carries the optimal set's decision and objective
// vectors, the final population, the recorded history and the seed that
// reproduces the run.
package moea
