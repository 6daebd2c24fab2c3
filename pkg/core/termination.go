package core

// Termination decides whether the generational loop keeps running. It is
// consulted exactly once per generation boundary against the live run state,
// so implementations may inspect evaluation counts, elapsed generations or
// any convergence metric they track themselves.
type Termination interface {
	Continue(state RunState) bool
}

// TerminationFunc adapts a plain function to the Termination interface.
type TerminationFunc func(state RunState) bool

func (f TerminationFunc) Continue(state RunState) bool {
	return f(state)
}
