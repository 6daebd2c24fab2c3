package engine_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/moea-go/internal/testutil"
	"github.com/XiaoConstantine/moea-go/pkg/core"
	"github.com/XiaoConstantine/moea-go/pkg/engine"
	moeaerrors "github.com/XiaoConstantine/moea-go/pkg/errors"
	"github.com/XiaoConstantine/moea-go/pkg/nds"
	"github.com/XiaoConstantine/moea-go/pkg/termination"
)

// staticStrategy hands out a fixed initial population and optionally custom
// advance behavior.
type staticStrategy struct {
	initial   *core.Population
	advance   func(eng *engine.Engine) (*core.Population, error)
	initErr   error
	finalized int
}

func (s *staticStrategy) Initialize(ctx context.Context, eng *engine.Engine) (*core.Population, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.initial, nil
}

func (s *staticStrategy) Advance(ctx context.Context, eng *engine.Engine) (*core.Population, error) {
	if s.advance != nil {
		return s.advance(eng)
	}
	return eng.Population(), nil
}

func (s *staticStrategy) Finalize(ctx context.Context, eng *engine.Engine) error {
	s.finalized++
	return nil
}

// defaultTermStrategy carries its own stopping condition.
type defaultTermStrategy struct {
	staticStrategy
}

func (s *defaultTermStrategy) DefaultTermination() core.Termination {
	return termination.NewMaxGenerations(2)
}

func evaluatedPop(X [][]float64, F [][]float64, CV []float64) *core.Population {
	pop := core.NewPopulation()
	for i := range X {
		ind := &core.Individual{X: X[i], F: F[i]}
		if CV != nil {
			ind.CV = CV[i]
		}
		pop.Append(ind)
	}
	return pop
}

func singleObjectiveProblem() core.Problem {
	return &testutil.FuncProblem{
		Objectives: 1,
		EvalFn: func(_ context.Context, X [][]float64) (*core.Evaluation, error) {
			return nil, stderrors.New("unexpected evaluation of pre-evaluated population")
		},
	}
}

func biObjectiveProblem() core.Problem {
	return &testutil.FuncProblem{
		Objectives: 2,
		EvalFn: func(_ context.Context, X [][]float64) (*core.Evaluation, error) {
			return nil, stderrors.New("unexpected evaluation of pre-evaluated population")
		},
	}
}

func TestRunRequiresTermination(t *testing.T) {
	eng := engine.New(&staticStrategy{initial: core.NewPopulation()})

	_, err := eng.Run(context.Background(), testutil.NewSphereProblem())
	require.Error(t, err)

	var coded *moeaerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, moeaerrors.ConfigurationInvalid, coded.Code())
	assert.Contains(t, err.Error(), "no termination criterion defined")
}

func TestRunRequiresProblem(t *testing.T) {
	eng := engine.New(&staticStrategy{initial: core.NewPopulation()},
		engine.WithTermination(termination.NewMaxGenerations(1)))

	_, err := eng.Run(context.Background(), nil)
	require.Error(t, err)

	var coded *moeaerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, moeaerrors.InvalidInput, coded.Code())
}

func TestRunUsesStrategyDefaultTermination(t *testing.T) {
	strategy := &defaultTermStrategy{}
	strategy.initial = evaluatedPop([][]float64{{1}}, [][]float64{{1}}, nil)

	res, err := engine.New(strategy).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generations)
}

func TestRunDeterministicWithFixedSeed(t *testing.T) {
	run := func() *engine.Result {
		eng := engine.New(
			&testutil.RandomSearch{PopSize: 10, Dim: 3, Lower: -1, Upper: 1},
			engine.WithSeed(7),
			engine.WithTermination(termination.NewMaxGenerations(5)),
			engine.WithSaveHistory(true),
		)
		res, err := eng.Run(context.Background(), testutil.NewSphereProblem())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.X, b.X)
	assert.Equal(t, a.F, b.F)
	assert.Equal(t, a.CV, b.CV)
	assert.Equal(t, len(a.History), len(b.History))
	assert.Equal(t, int64(7), a.Seed)
}

func TestRunRecordsDrawnSeed(t *testing.T) {
	strategy := &testutil.RandomSearch{PopSize: 5, Dim: 2, Lower: -1, Upper: 1}
	first, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(3)),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	// Replaying the recorded seed must reproduce the run.
	replay, err := engine.New(strategy,
		engine.WithSeed(first.Seed),
		engine.WithTermination(termination.NewMaxGenerations(3)),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	assert.Equal(t, first.F, replay.F)
	assert.Equal(t, first.X, replay.X)
}

func TestHistoryTracking(t *testing.T) {
	strategy := &testutil.RandomSearch{PopSize: 4, Dim: 2, Lower: 0, Upper: 1}

	withHistory, err := engine.New(strategy,
		engine.WithSeed(1),
		engine.WithTermination(termination.NewMaxGenerations(4)),
		engine.WithSaveHistory(true),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	// One snapshot per generation, including the initial one.
	require.Len(t, withHistory.History, withHistory.Generations)
	for i, snap := range withHistory.History {
		assert.Equal(t, i+1, snap.Generation)
		assert.NotEmpty(t, snap.ID)
		assert.Equal(t, 4, snap.Population.Len())
	}

	without, err := engine.New(strategy,
		engine.WithSeed(1),
		engine.WithTermination(termination.NewMaxGenerations(4)),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)
	assert.Empty(t, without.History)
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	res, err := engine.New(
		&testutil.RandomSearch{PopSize: 3, Dim: 1, Lower: 0, Upper: 1},
		engine.WithSeed(2),
		engine.WithTermination(termination.NewMaxGenerations(2)),
		engine.WithSaveHistory(true),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)
	require.Len(t, res.History, 2)

	last := res.History[1].Population
	want := last.At(0).F[0]

	// Mutating the final population must not leak into the snapshot.
	res.Population.At(0).F[0] = 12345
	assert.Equal(t, want, last.At(0).F[0])
}

func TestImmediateTerminationStillInitializes(t *testing.T) {
	callback := &testutil.CountingCallback{}
	strategy := &staticStrategy{initial: evaluatedPop([][]float64{{1}}, [][]float64{{2}}, nil)}

	res, err := engine.New(strategy,
		engine.WithTermination(core.TerminationFunc(func(core.RunState) bool { return false })),
		engine.WithCallback(callback.Func()),
		engine.WithSaveHistory(true),
	).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Generations)
	assert.Equal(t, []int{1}, callback.Generations)
	assert.Len(t, res.History, 1)
	assert.Equal(t, 1, strategy.finalized)
}

func TestTerminationPolledOncePerGeneration(t *testing.T) {
	term := &testutil.MockTermination{}
	term.On("Continue", mock.Anything).Return(true).Twice()
	term.On("Continue", mock.Anything).Return(false).Once()

	strategy := &staticStrategy{initial: evaluatedPop([][]float64{{1}}, [][]float64{{2}}, nil)}
	res, err := engine.New(strategy,
		engine.WithTermination(term),
	).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Generations)
	term.AssertNumberOfCalls(t, "Continue", 3)
}

func TestCallbackSeesEveryGeneration(t *testing.T) {
	callback := &testutil.CountingCallback{}
	_, err := engine.New(
		&testutil.RandomSearch{PopSize: 3, Dim: 1, Lower: 0, Upper: 1},
		engine.WithSeed(3),
		engine.WithTermination(termination.NewMaxGenerations(4)),
		engine.WithCallback(callback.Func()),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, callback.Generations)
}

func TestNoFeasibleSolution(t *testing.T) {
	pop := evaluatedPop(
		[][]float64{{1}, {2}},
		[][]float64{{1}, {2}},
		[]float64{0.5, 2.0}, // everybody violates constraints
	)
	strategy := &staticStrategy{initial: pop}

	res, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(1)),
	).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)

	assert.True(t, res.NoFeasibleFound)
	assert.Nil(t, res.Optimal)
	assert.Nil(t, res.X)
	assert.Nil(t, res.F)
	assert.Nil(t, res.CV)
	assert.Nil(t, res.G)
	assert.Equal(t, 2, res.Population.Len())
}

func TestSingleObjectiveStableArgmin(t *testing.T) {
	pop := evaluatedPop(
		[][]float64{{10}, {20}, {30}, {40}},
		[][]float64{{3}, {1}, {1}, {2}}, // tie between index 1 and 2
		nil,
	)
	strategy := &staticStrategy{initial: pop}

	res, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(1)),
	).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)

	require.False(t, res.NoFeasibleFound)
	require.Len(t, res.X, 1)
	// First occurrence wins the tie.
	assert.Equal(t, []float64{20}, res.X[0])
	assert.Equal(t, []float64{1}, res.F[0])

	// True minimum over the feasible pool.
	for _, f := range pop.Objectives() {
		assert.LessOrEqual(t, res.F[0][0], f[0])
	}
}

func TestMultiObjectiveFrontExtraction(t *testing.T) {
	pop := evaluatedPop(
		[][]float64{{0}, {1}, {2}, {3}, {4}},
		[][]float64{{1, 4}, {2, 3}, {3, 3}, {4, 1}, {5, 5}},
		nil,
	)
	strategy := &staticStrategy{initial: pop}

	res, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(1)),
	).Run(context.Background(), biObjectiveProblem())
	require.NoError(t, err)

	require.False(t, res.NoFeasibleFound)
	assert.Equal(t, [][]float64{{1, 4}, {2, 3}, {4, 1}}, res.F)

	// Every member of the optimal set is non-dominated within the set.
	for i := range res.F {
		for j := range res.F {
			if i != j {
				assert.False(t, nds.Dominates(res.F[j], res.F[i]))
			}
		}
	}

	// No individual of the final population dominates a member of the set.
	for _, f := range res.Population.Objectives() {
		for _, opt := range res.F {
			assert.False(t, nds.Dominates(f, opt))
		}
	}
}

func TestLazyEvaluationGuard(t *testing.T) {
	// The strategy returns unevaluated individuals; the engine must batch
	// them through the evaluator before extraction.
	strategy := &staticStrategy{initial: core.NewPopulationFromX([][]float64{{2}, {1}, {3}})}

	res, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(1)),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Evaluations)
	require.Len(t, res.F, 1)
	assert.Equal(t, []float64{1}, res.F[0])
	assert.Equal(t, []float64{1}, res.X[0])
}

func TestStrategyOptSeedsExtraction(t *testing.T) {
	elite := evaluatedPop([][]float64{{0}}, [][]float64{{0.5}}, nil)
	initial := evaluatedPop([][]float64{{9}}, [][]float64{{9}}, nil)

	strategy := &staticStrategy{
		initial: initial,
		advance: func(eng *engine.Engine) (*core.Population, error) {
			eng.SetOpt(elite)
			return eng.Population(), nil
		},
	}

	res, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(2)),
	).Run(context.Background(), singleObjectiveProblem())
	require.NoError(t, err)

	require.Len(t, res.F, 1)
	assert.Equal(t, []float64{0.5}, res.F[0])
}

func TestInitializeErrorPropagates(t *testing.T) {
	strategy := &staticStrategy{initErr: stderrors.New("sampler exploded")}

	_, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(1)),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.Error(t, err)

	var coded *moeaerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, moeaerrors.InitializationFailed, coded.Code())
}

func TestAdvanceErrorPropagates(t *testing.T) {
	strategy := &staticStrategy{
		initial: evaluatedPop([][]float64{{1}}, [][]float64{{1}}, nil),
		advance: func(eng *engine.Engine) (*core.Population, error) {
			return nil, stderrors.New("operator exploded")
		},
	}

	_, err := engine.New(strategy,
		engine.WithTermination(termination.NewMaxGenerations(3)),
	).Run(context.Background(), singleObjectiveProblem())
	require.Error(t, err)

	var coded *moeaerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, moeaerrors.AdvanceFailed, coded.Code())
}

func TestCanceledContextStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.New(
		&testutil.RandomSearch{PopSize: 2, Dim: 1, Lower: 0, Upper: 1},
		engine.WithSeed(1),
		engine.WithTermination(termination.NewMaxGenerations(100)),
	).Run(ctx, testutil.NewSphereProblem())
	require.Error(t, err)
}

func TestDisplayRendering(t *testing.T) {
	var buf bytes.Buffer
	_, err := engine.New(
		&testutil.RandomSearch{PopSize: 3, Dim: 1, Lower: 0, Upper: 1},
		engine.WithSeed(4),
		engine.WithTermination(termination.NewMaxGenerations(3)),
		engine.WithVerbose(true),
		engine.WithDisplay(engine.DefaultDisplay),
		engine.WithDisplayWriter(&buf),
	).Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Banner, header, banner, then one row per generation.
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "===="))
	assert.Contains(t, lines[1], "n_gen")
	assert.Contains(t, lines[1], "n_eval")
	assert.Contains(t, lines[3], "|")
}

func TestRunIDsAreUniquePerRun(t *testing.T) {
	strategy := &testutil.RandomSearch{PopSize: 2, Dim: 1, Lower: 0, Upper: 1}
	eng := engine.New(strategy,
		engine.WithSeed(5),
		engine.WithTermination(termination.NewMaxGenerations(1)))

	a, err := eng.Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)
	b, err := eng.Run(context.Background(), testutil.NewSphereProblem())
	require.NoError(t, err)

	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}
