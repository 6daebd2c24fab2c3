package core

import (
	"math/rand"
	"sync"
	"time"
)

var (
	seedSourceMu sync.Mutex
	seedSource   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewRand returns a random source seeded deterministically. All stochastic
// collaborators of a run should draw from a single source in a stable order
// so a fixed seed reproduces the run end-to-end.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DrawSeed draws a fresh seed from the process-level source. The driver uses
// it when no explicit seed was supplied and records it so the run stays
// reproducible after the fact.
func DrawSeed() int64 {
	seedSourceMu.Lock()
	defer seedSourceMu.Unlock()
	return seedSource.Int63()
}
