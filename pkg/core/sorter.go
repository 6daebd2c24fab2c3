package core

// Sorter computes non-dominated fronts over an objective matrix, row per
// individual, minimization on every column.
type Sorter interface {
	// FirstFront returns the indices of the non-dominated front in
	// ascending order.
	FirstFront(F [][]float64) []int
}
