// Package niching implements epsilon-clearing, a diversity-preservation
// primitive used by niching-based selection strategies. Given a pairwise
// distance matrix, selecting a point clears every other point within epsilon
// of it, forcing subsequent picks away from already-covered regions.
package niching

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EpsilonClearing tracks which candidate indices remain eligible while a
// selection strategy greedily picks points from a fixed distance matrix. The
// matrix is held by reference and never mutated.
type EpsilonClearing struct {
	d       mat.Matrix
	epsilon float64
	n       int

	selected []int  // append-only within a pass
	cleared  []bool // mask of ineligible indices
}

// NewEpsilonClearing creates a clearing state over the n x n distance matrix
// d. Panics if d is not square; a malformed matrix is a caller bug, not a
// runtime condition.
func NewEpsilonClearing(d mat.Matrix, epsilon float64) *EpsilonClearing {
	r, c := d.Dims()
	if r != c {
		panic(fmt.Sprintf("niching: distance matrix must be square, got %dx%d", r, c))
	}
	return &EpsilonClearing{
		d:       d,
		epsilon: epsilon,
		n:       r,
		cleared: make([]bool, r),
	}
}

// Select marks k as selected and clears it together with every index within
// epsilon of it. The caller must pick k from Remaining; re-selecting a
// cleared index violates the contract.
func (e *EpsilonClearing) Select(k int) {
	e.selected = append(e.selected, k)
	e.cleared[k] = true

	for j := 0; j < e.n; j++ {
		if e.d.At(k, j) < e.epsilon {
			e.cleared[j] = true
		}
	}
}

// Remaining returns the indices not yet cleared, in ascending order.
func (e *EpsilonClearing) Remaining() []int {
	remaining := make([]int, 0, e.n-len(e.selected))
	for i := 0; i < e.n; i++ {
		if !e.cleared[i] {
			remaining = append(remaining, i)
		}
	}
	return remaining
}

// HasRemaining reports whether any index is still eligible.
func (e *EpsilonClearing) HasRemaining() bool {
	for i := 0; i < e.n; i++ {
		if !e.cleared[i] {
			return true
		}
	}
	return false
}

// Reset recomputes the cleared mask as exactly the selected indices. Points
// that were only excluded by proximity to an earlier pick become eligible
// again; already-chosen points stay cleared.
func (e *EpsilonClearing) Reset() {
	for i := range e.cleared {
		e.cleared[i] = false
	}
	for _, k := range e.selected {
		e.cleared[k] = true
	}
}

// Cleared returns a copy of the cleared mask.
func (e *EpsilonClearing) Cleared() []bool {
	return append([]bool(nil), e.cleared...)
}

// Selected returns a copy of the selected indices in selection order.
func (e *EpsilonClearing) Selected() []int {
	return append([]int(nil), e.selected...)
}
