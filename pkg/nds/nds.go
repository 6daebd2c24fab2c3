// Package nds provides the default non-dominated sorting oracle used by the
// driver when extracting the optimal set. The driver consumes it through the
// core.Sorter interface, so callers with faster sorting implementations can
// swap it out.
package nds

// NonDominatedSorter partitions objective matrices into Pareto fronts using
// a pairwise dominance sweep. Adequate for the population sizes the driver
// handles per generation.
type NonDominatedSorter struct{}

// New returns a NonDominatedSorter.
func New() *NonDominatedSorter {
	return &NonDominatedSorter{}
}

// FirstFront returns the indices of the non-dominated front of F in
// ascending order.
func (s *NonDominatedSorter) FirstFront(F [][]float64) []int {
	n := len(F)
	front := make([]int, 0, n)
	for i := 0; i < n; i++ {
		dominated := false
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Dominates(F[j], F[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

// Sort partitions all indices of F into successive fronts. The first front
// is non-dominated within F, the second non-dominated once the first is
// removed, and so on.
func (s *NonDominatedSorter) Sort(F [][]float64) [][]int {
	n := len(F)
	assigned := make([]bool, n)
	remaining := n

	var fronts [][]int
	for remaining > 0 {
		var front []int
		for i := 0; i < n; i++ {
			if assigned[i] {
				continue
			}
			dominated := false
			for j := 0; j < n; j++ {
				if i == j || assigned[j] {
					continue
				}
				if Dominates(F[j], F[i]) {
					dominated = true
					break
				}
			}
			if !dominated {
				front = append(front, i)
			}
		}
		for _, i := range front {
			assigned[i] = true
		}
		remaining -= len(front)
		fronts = append(fronts, front)
	}
	return fronts
}

// Dominates reports whether objective vector a dominates b under
// minimization: a is no worse in every objective and strictly better in at
// least one.
func Dominates(a, b []float64) bool {
	better := false
	for k := range a {
		if a[k] > b[k] {
			return false
		}
		if a[k] < b[k] {
			better = true
		}
	}
	return better
}
