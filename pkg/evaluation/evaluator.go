// Package evaluation provides the default counting evaluator installed by
// the driver when the caller supplies none. It batches unevaluated
// individuals into a single problem call and writes objective, constraint
// and violation values back onto them.
package evaluation

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/errors"
)

// Evaluator is the default core.Evaluator. With concurrency above one it
// splits a batch into contiguous chunks evaluated on a bounded goroutine
// pool; the driver loop itself stays synchronous around the Eval call.
type Evaluator struct {
	mu          sync.Mutex
	count       int
	concurrency int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithConcurrency bounds the number of concurrent chunk evaluations. Values
// below two keep evaluation sequential.
func WithConcurrency(n int) Option {
	return func(e *Evaluator) {
		e.concurrency = n
	}
}

// New creates a fresh evaluator with a zero evaluation count.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{concurrency: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Count returns the number of evaluations performed so far.
func (e *Evaluator) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// Eval evaluates every individual of pop against the problem and writes the
// results back. Errors from the problem are not retried; a partially
// evaluated batch is surfaced as a failure.
func (e *Evaluator) Eval(ctx context.Context, problem core.Problem, pop *core.Population, state core.RunState) error {
	if pop.Len() == 0 {
		return nil
	}
	if err := errors.CheckContext(ctx, "evaluation"); err != nil {
		return err
	}

	if e.concurrency > 1 && pop.Len() > 1 {
		if err := e.evalConcurrent(ctx, problem, pop); err != nil {
			return err
		}
	} else {
		if err := e.evalChunk(ctx, problem, pop, 0, pop.Len()); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.count += pop.Len()
	e.mu.Unlock()
	return nil
}

// evalConcurrent splits pop into contiguous chunks and evaluates them on a
// bounded pool. Chunks write to disjoint index ranges, so no lock is needed
// on the write-back path.
func (e *Evaluator) evalConcurrent(ctx context.Context, problem core.Problem, pop *core.Population) error {
	n := pop.Len()
	chunks := e.concurrency
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	p := pool.New().WithErrors().WithMaxGoroutines(e.concurrency)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, lo+size
		if hi > n {
			hi = n
		}
		p.Go(func() error {
			return e.evalChunk(ctx, problem, pop, lo, hi)
		})
	}
	return p.Wait()
}

// evalChunk evaluates pop[lo:hi] in one batched problem call.
func (e *Evaluator) evalChunk(ctx context.Context, problem core.Problem, pop *core.Population, lo, hi int) error {
	X := make([][]float64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		X = append(X, pop.At(i).X)
	}

	result, err := problem.Evaluate(ctx, X)
	if err != nil {
		return errors.Wrap(err, errors.EvaluationFailed, "problem evaluation failed")
	}
	if len(result.F) != len(X) {
		return errors.WithFields(
			errors.New(errors.EvaluationFailed, "problem returned wrong number of objective rows"),
			errors.Fields{"expected": len(X), "got": len(result.F)})
	}
	if result.G != nil && len(result.G) != len(X) {
		return errors.WithFields(
			errors.New(errors.EvaluationFailed, "problem returned wrong number of constraint rows"),
			errors.Fields{"expected": len(X), "got": len(result.G)})
	}

	for i := lo; i < hi; i++ {
		ind := pop.At(i)
		ind.F = result.F[i-lo]
		if result.G != nil {
			ind.G = result.G[i-lo]
			ind.CV = ViolationOf(ind.G)
		} else {
			ind.G = nil
			ind.CV = 0
		}
	}
	return nil
}

// ViolationOf aggregates raw inequality constraint values g(x) <= 0 into a
// single non-negative violation measure.
func ViolationOf(g []float64) float64 {
	var cv float64
	for _, v := range g {
		if v > 0 {
			cv += v
		}
	}
	return cv
}
