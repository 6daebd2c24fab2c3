package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/XiaoConstantine/moea-go/pkg/core"
)

// Snapshot is an immutable record of the engine state at one generation
// boundary. It holds an independent deep copy of the population and
// deliberately excludes the callback and the history container itself, so
// snapshots never grow recursively or capture closures.
type Snapshot struct {
	ID          string
	Generation  int
	Evaluations int
	Population  *core.Population
	TakenAt     time.Time
}

func (e *Engine) takeSnapshot() *Snapshot {
	return &Snapshot{
		ID:          uuid.New().String(),
		Generation:  e.generation,
		Evaluations: e.evaluator.Count(),
		Population:  e.pop.DeepCopy(),
		TakenAt:     time.Now(),
	}
}
