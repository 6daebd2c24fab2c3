// Package engine implements the generational control loop driving an
// evolutionary optimization run: it seeds randomness, initializes a
// population through the strategy hooks, advances generations until a
// termination predicate stops the loop, keeps optional history snapshots and
// extracts the optimal set from the final population.
package engine

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/errors"
	"github.com/XiaoConstantine/moea-go/pkg/evaluation"
	"github.com/XiaoConstantine/moea-go/pkg/logging"
	"github.com/XiaoConstantine/moea-go/pkg/nds"
)

// Engine owns the mutable state of one optimization run. It implements
// core.RunState, which is the read view handed to terminations, callbacks
// and display functions. The loop is synchronous: each generation's advance
// and evaluation completes before the next begins, and the termination
// predicate is polled exactly once per generation boundary.
type Engine struct {
	strategy     Strategy
	problem      core.Problem
	evaluator    core.Evaluator
	evaluatorSet bool
	termination  core.Termination
	sorter       core.Sorter

	rng      *rand.Rand
	seed     int64
	seedSet  bool
	fixedRNG bool

	verbose       bool
	saveHistory   bool
	callback      core.Callback
	displayFunc   core.DisplayFunc
	displayWriter io.Writer
	pf            [][]float64

	// live run state
	runID         string
	generation    int
	pop           *core.Population
	opt           *core.Population
	history       []*Snapshot
	started       time.Time
	headerPrinted bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTermination sets the termination predicate for the run.
func WithTermination(t core.Termination) Option {
	return func(e *Engine) { e.termination = t }
}

// WithEvaluator installs a custom evaluator. Without it every run gets a
// fresh counting evaluator.
func WithEvaluator(ev core.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = ev
		e.evaluatorSet = ev != nil
	}
}

// WithSorter installs the non-dominated sorting oracle used during optimal
// set extraction.
func WithSorter(s core.Sorter) Option {
	return func(e *Engine) { e.sorter = s }
}

// WithSeed fixes the random seed, making the run reproducible provided all
// collaborators draw from the engine's source in a stable order.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seedSet = true
	}
}

// WithRNG injects a random source directly, bypassing seed handling. Meant
// for tests that need full control over the stream.
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
		e.fixedRNG = true
	}
}

// WithVerbose enables per-generation display output.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.verbose = verbose }
}

// WithSaveHistory enables per-generation snapshots on the Result.
func WithSaveHistory(save bool) Option {
	return func(e *Engine) { e.saveHistory = save }
}

// WithCallback registers a procedure invoked once per generation with the
// live run state.
func WithCallback(cb core.Callback) Option {
	return func(e *Engine) { e.callback = cb }
}

// WithDisplay sets the function producing the per-generation progress
// columns.
func WithDisplay(f core.DisplayFunc) Option {
	return func(e *Engine) { e.displayFunc = f }
}

// WithDisplayWriter redirects display output, default os.Stdout.
func WithDisplayWriter(w io.Writer) Option {
	return func(e *Engine) { e.displayWriter = w }
}

// WithParetoFront supplies the known Pareto front of the problem; it is
// forwarded to display functions and recorded on the Result.
func WithParetoFront(pf [][]float64) Option {
	return func(e *Engine) { e.pf = pf }
}

// New creates an engine around a strategy.
func New(strategy Strategy, opts ...Option) *Engine {
	e := &Engine{
		strategy:      strategy,
		sorter:        nds.New(),
		displayWriter: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run optimizes the problem until the termination predicate stops the loop
// and returns the terminal Result. Per-run options are applied on top of the
// constructor's. Collaborator failures are surfaced immediately; the engine
// performs no recovery since a partially evaluated generation cannot be
// meaningfully resumed.
func (e *Engine) Run(ctx context.Context, problem core.Problem, opts ...Option) (*Result, error) {
	for _, opt := range opts {
		opt(e)
	}

	if e.strategy == nil {
		return nil, errors.New(errors.ConfigurationInvalid, "no strategy defined")
	}
	if problem == nil {
		return nil, errors.New(errors.InvalidInput, "no problem given")
	}
	if e.termination == nil {
		if p, ok := e.strategy.(DefaultTerminationProvider); ok {
			e.termination = p.DefaultTermination()
		}
	}
	if e.termination == nil {
		return nil, errors.New(errors.ConfigurationInvalid, "no termination criterion defined")
	}

	e.problem = problem
	if !e.evaluatorSet {
		e.evaluator = evaluation.New()
	}
	if !e.fixedRNG {
		if !e.seedSet {
			e.seed = core.DrawSeed()
		}
		e.rng = core.NewRand(e.seed)
	}

	e.runID = uuid.New().String()
	e.history = nil
	e.opt = nil
	e.headerPrinted = false
	e.started = time.Now()

	ctx = logging.WithRunID(ctx, e.runID)
	logger := logging.GetLogger()
	logger.Info(ctx, "Starting optimization run: objectives=%d, constraints=%d, seed=%d",
		problem.NumObjectives(), problem.NumConstraints(), e.seed)

	pop, err := e.loop(ctx)
	if err != nil {
		return nil, err
	}
	e.pop = pop

	result, err := e.buildResult(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Run finished: generations=%d, evaluations=%d, feasible_found=%v",
		e.generation, e.evaluator.Count(), !result.NoFeasibleFound)
	return result, nil
}

// loop executes the generational state machine and returns the final
// population. The initial population is always created and bookkept exactly
// once, even when the termination predicate is immediately false.
func (e *Engine) loop(ctx context.Context) (*core.Population, error) {
	logger := logging.GetLogger()

	e.generation = 1
	pop, err := e.strategy.Initialize(ctx, e)
	if err != nil {
		return nil, errors.Wrap(err, errors.InitializationFailed, "strategy initialization failed")
	}
	e.pop = pop
	e.observe(ctx)

	for e.termination.Continue(e) {
		if err := errors.CheckContext(ctx, "optimization run"); err != nil {
			return nil, err
		}

		e.generation++
		logger.Debug(logging.WithGeneration(ctx, e.generation), "Advancing generation")

		pop, err = e.strategy.Advance(ctx, e)
		if err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.AdvanceFailed, "strategy advance failed"),
				errors.Fields{"generation": e.generation})
		}
		e.pop = pop
		e.observe(ctx)
	}

	if err := e.strategy.Finalize(ctx, e); err != nil {
		return nil, err
	}
	return e.pop, nil
}

// observe runs the per-generation bookkeeping pass: display, callback and
// history snapshot, in that order.
func (e *Engine) observe(ctx context.Context) {
	if e.verbose && e.displayFunc != nil {
		attrs := e.displayFunc(e.problem, e.evaluator, e, e.pf)
		if attrs != nil {
			e.renderDisplay(attrs)
		}
	}

	if e.callback != nil {
		e.callback(e)
	}

	if e.saveHistory {
		e.history = append(e.history, e.takeSnapshot())
	}
}

// EnsureEvaluated dispatches every individual of pop that still lacks an
// objective vector to the evaluator in one batched call. No individual
// feeding into selection or optimal-set extraction may carry stale or
// missing objectives.
func (e *Engine) EnsureEvaluated(ctx context.Context, pop *core.Population) error {
	unevaluated := pop.UnevaluatedIndices()
	if len(unevaluated) == 0 {
		return nil
	}
	return e.evaluator.Eval(ctx, e.problem, pop.Select(unevaluated), e)
}

// Generation returns the current generation counter, starting at 1.
func (e *Engine) Generation() int { return e.generation }

// Evaluations returns the number of problem evaluations performed so far.
func (e *Engine) Evaluations() int {
	if e.evaluator == nil {
		return 0
	}
	return e.evaluator.Count()
}

// Population returns the current population.
func (e *Engine) Population() *core.Population { return e.pop }

// Problem returns the problem being optimized.
func (e *Engine) Problem() core.Problem { return e.problem }

// StartedAt returns the wall-clock time the run started.
func (e *Engine) StartedAt() time.Time { return e.started }

// RunID returns the identifier of the current run.
func (e *Engine) RunID() string { return e.runID }

// Seed returns the random seed of the current run. When no seed was
// supplied, the drawn one is recorded here so the run can be reproduced.
func (e *Engine) Seed() int64 { return e.seed }

// RNG returns the run's random source. Strategies must draw all their
// randomness from it to keep seeded runs deterministic.
func (e *Engine) RNG() *rand.Rand { return e.rng }

// Evaluator returns the installed evaluator.
func (e *Engine) Evaluator() core.Evaluator { return e.evaluator }

// Opt returns the strategy-maintained optimum population, if any.
func (e *Engine) Opt() *core.Population { return e.opt }

// SetOpt lets a strategy maintain its own elite archive; when present it
// seeds the optimal-set extraction instead of the final population.
func (e *Engine) SetOpt(opt *core.Population) { e.opt = opt }

// History returns the snapshots collected so far.
func (e *Engine) History() []*Snapshot { return e.history }
