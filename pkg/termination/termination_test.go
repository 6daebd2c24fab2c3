package termination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/XiaoConstantine/moea-go/pkg/core"
)

// fakeState is a minimal core.RunState for predicate tests.
type fakeState struct {
	generation  int
	evaluations int
	started     time.Time
}

func (s *fakeState) Generation() int              { return s.generation }
func (s *fakeState) Evaluations() int             { return s.evaluations }
func (s *fakeState) Population() *core.Population { return nil }
func (s *fakeState) Problem() core.Problem        { return nil }
func (s *fakeState) StartedAt() time.Time         { return s.started }

func TestMaxGenerations(t *testing.T) {
	term := NewMaxGenerations(3)

	assert.True(t, term.Continue(&fakeState{generation: 1}))
	assert.True(t, term.Continue(&fakeState{generation: 2}))
	assert.False(t, term.Continue(&fakeState{generation: 3}))
	assert.False(t, term.Continue(&fakeState{generation: 4}))
}

func TestMaxEvaluations(t *testing.T) {
	term := NewMaxEvaluations(100)

	assert.True(t, term.Continue(&fakeState{evaluations: 99}))
	assert.False(t, term.Continue(&fakeState{evaluations: 100}))
}

func TestTimeBudget(t *testing.T) {
	term := NewTimeBudget(time.Hour)
	assert.True(t, term.Continue(&fakeState{started: time.Now()}))

	exhausted := NewTimeBudget(time.Nanosecond)
	assert.False(t, exhausted.Continue(&fakeState{started: time.Now().Add(-time.Second)}))
}

func TestCombinedStopsOnAnyCriterion(t *testing.T) {
	term := NewCombined(NewMaxGenerations(10), NewMaxEvaluations(100))

	assert.True(t, term.Continue(&fakeState{generation: 5, evaluations: 50}))
	assert.False(t, term.Continue(&fakeState{generation: 10, evaluations: 50}))
	assert.False(t, term.Continue(&fakeState{generation: 5, evaluations: 100}))
}

func TestTerminationFuncAdapter(t *testing.T) {
	calls := 0
	term := core.TerminationFunc(func(state core.RunState) bool {
		calls++
		return calls < 2
	})

	assert.True(t, term.Continue(&fakeState{}))
	assert.False(t, term.Continue(&fakeState{}))
}
