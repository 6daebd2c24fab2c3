package core

import (
	"fmt"
)

// Population is an ordered collection of individuals. It is owned exclusively
// by the driver between generations; strategies receive it, produce a
// successor and hand ownership back. Sub-selection returns a view sharing the
// underlying individuals so that evaluator writes are visible through the
// parent collection.
type Population struct {
	individuals []*Individual
}

// NewPopulation creates a population from the given individuals.
func NewPopulation(individuals ...*Individual) *Population {
	return &Population{individuals: individuals}
}

// NewPopulationFromX creates an unevaluated population from decision vectors.
func NewPopulationFromX(X [][]float64) *Population {
	individuals := make([]*Individual, len(X))
	for i, x := range X {
		individuals[i] = NewIndividual(x)
	}
	return &Population{individuals: individuals}
}

// Len returns the number of individuals.
func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.individuals)
}

// At returns the individual at index i.
func (p *Population) At(i int) *Individual {
	return p.individuals[i]
}

// Append adds individuals to the end of the population.
func (p *Population) Append(individuals ...*Individual) {
	p.individuals = append(p.individuals, individuals...)
}

// Select returns a view containing the individuals at the given indices, in
// the given order. The view shares individuals with the receiver.
func (p *Population) Select(indices []int) *Population {
	selected := make([]*Individual, len(indices))
	for i, idx := range indices {
		selected[i] = p.individuals[idx]
	}
	return &Population{individuals: selected}
}

// ReplaceAt assigns the individuals of sub to the given indices. The number
// of indices must match the size of sub.
func (p *Population) ReplaceAt(indices []int, sub *Population) error {
	if len(indices) != sub.Len() {
		return fmt.Errorf("replace size mismatch: %d indices for %d individuals", len(indices), sub.Len())
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(p.individuals) {
			return fmt.Errorf("replace index %d out of range [0,%d)", idx, len(p.individuals))
		}
		p.individuals[idx] = sub.individuals[i]
	}
	return nil
}

// Decisions returns the decision vectors of all individuals, row per individual.
func (p *Population) Decisions() [][]float64 {
	X := make([][]float64, len(p.individuals))
	for i, ind := range p.individuals {
		X[i] = ind.X
	}
	return X
}

// Objectives returns the objective vectors of all individuals. Rows of
// unevaluated individuals are nil.
func (p *Population) Objectives() [][]float64 {
	F := make([][]float64, len(p.individuals))
	for i, ind := range p.individuals {
		F[i] = ind.F
	}
	return F
}

// ConstraintValues returns the raw constraint vectors of all individuals.
func (p *Population) ConstraintValues() [][]float64 {
	G := make([][]float64, len(p.individuals))
	for i, ind := range p.individuals {
		G[i] = ind.G
	}
	return G
}

// Violations returns the aggregated constraint violation of each individual.
func (p *Population) Violations() []float64 {
	CV := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		CV[i] = ind.CV
	}
	return CV
}

// FeasibleMask returns a boolean mask marking feasible individuals.
func (p *Population) FeasibleMask() []bool {
	mask := make([]bool, len(p.individuals))
	for i, ind := range p.individuals {
		mask[i] = ind.Feasible()
	}
	return mask
}

// FeasibleIndices returns the indices of feasible individuals in ascending order.
func (p *Population) FeasibleIndices() []int {
	var indices []int
	for i, ind := range p.individuals {
		if ind.Feasible() {
			indices = append(indices, i)
		}
	}
	return indices
}

// UnevaluatedIndices returns the indices of individuals without an objective
// vector, in ascending order.
func (p *Population) UnevaluatedIndices() []int {
	var indices []int
	for i, ind := range p.individuals {
		if !ind.Evaluated() {
			indices = append(indices, i)
		}
	}
	return indices
}

// DeepCopy returns a population whose individuals are independent copies.
func (p *Population) DeepCopy() *Population {
	if p == nil {
		return nil
	}
	individuals := make([]*Individual, len(p.individuals))
	for i, ind := range p.individuals {
		individuals[i] = ind.Copy()
	}
	return &Population{individuals: individuals}
}
