// Package termination provides stock termination predicates for the driver.
// Anything implementing core.Termination works; these cover the common
// budget-style stopping conditions.
package termination

import (
	"time"

	"github.com/XiaoConstantine/moea-go/pkg/core"
)

// MaxGenerations stops the run once n generations have executed, counting
// the initial one.
type MaxGenerations struct {
	n int
}

// NewMaxGenerations creates a generation-budget predicate.
func NewMaxGenerations(n int) *MaxGenerations {
	return &MaxGenerations{n: n}
}

func (t *MaxGenerations) Continue(state core.RunState) bool {
	return state.Generation() < t.n
}

// MaxEvaluations stops the run once the evaluator has performed n problem
// evaluations.
type MaxEvaluations struct {
	n int
}

// NewMaxEvaluations creates an evaluation-budget predicate.
func NewMaxEvaluations(n int) *MaxEvaluations {
	return &MaxEvaluations{n: n}
}

func (t *MaxEvaluations) Continue(state core.RunState) bool {
	return state.Evaluations() < t.n
}

// TimeBudget stops the run once the wall-clock budget is spent. The budget
// is polled once per generation boundary, so a long generation can overshoot.
type TimeBudget struct {
	d time.Duration
}

// NewTimeBudget creates a wall-clock-budget predicate.
func NewTimeBudget(d time.Duration) *TimeBudget {
	return &TimeBudget{d: d}
}

func (t *TimeBudget) Continue(state core.RunState) bool {
	return time.Since(state.StartedAt()) < t.d
}

// Combined stops as soon as any of its criteria stops.
type Combined struct {
	criteria []core.Termination
}

// NewCombined creates a predicate that continues only while every criterion
// continues.
func NewCombined(criteria ...core.Termination) *Combined {
	return &Combined{criteria: criteria}
}

func (t *Combined) Continue(state core.RunState) bool {
	for _, c := range t.criteria {
		if !c.Continue(state) {
			return false
		}
	}
	return true
}
