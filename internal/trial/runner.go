// Package trial fans a simulation run out across independent trials: each
// trial gets its own urn, its own RNG stream, and its own seed, and trials
// run concurrently in a worker pool sized to the available CPUs, since
// spec.md's concurrency model guarantees no shared mutable state between
// them.
package trial

import (
	"runtime"
	"sync"

	"github.com/jihwankim/popproto/internal/sim"
)

// Job is one trial's work: run the simulator for a given seed and return
// its snapshot matrix.
type Job func(seed uint64) sim.Snapshots

// Config holds the fan-out parameters.
type Config struct {
	NTrials  uint64
	BaseSeed uint64
}

// Run executes cfg.NTrials independent trials, seeded baseSeed, baseSeed+1,
// ..., baseSeed+NTrials-1, across a worker pool sized to
// runtime.GOMAXPROCS(0). Results are returned in trial order regardless of
// completion order, so output is deterministic given the same seeds.
func Run(cfg Config, job Job) []sim.Snapshots {
	results := make([]sim.Snapshots, cfg.NTrials)

	workers := runtime.GOMAXPROCS(0)
	if uint64(workers) > cfg.NTrials {
		workers = int(cfg.NTrials)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	tasks := make(chan uint64)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				seed := cfg.BaseSeed + idx
				results[idx] = job(seed)
			}
		}()
	}

	for idx := uint64(0); idx < cfg.NTrials; idx++ {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	return results
}
