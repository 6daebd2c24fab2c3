package niching

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EuclideanDistances builds the symmetric pairwise Euclidean distance matrix
// over the given row vectors, the usual input to epsilon-clearing.
func EuclideanDistances(X [][]float64) *mat.SymDense {
	n := len(X)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, floats.Distance(X[i], X[j], 2))
		}
	}
	return d
}
