// Package trials runs repeated independent circuit executions and reduces
// the raw results to outcome statistics. Trials share nothing mutable: each
// gets its own state, register, and a seed derived from the experiment seed
// plus the trial index, so a whole experiment replays exactly from one seed.
package trials

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

// Result holds the final state and register of one trial.
type Result struct {
	Trial    int
	Seed     int64
	State    *sim.StateVector
	Register *sim.ClassicalRegister
}

// Experiment describes a batch of independent runs of one circuit.
type Experiment struct {
	ID      uuid.UUID
	Circuit *sim.Circuit
	Shots   int
	Seed    int64
	Workers int // 0 means one worker per CPU

	runner *sim.Runner
	log    zerolog.Logger
}

// New creates an experiment over the given circuit.
func New(c *sim.Circuit, shots int, seed int64, logger zerolog.Logger) *Experiment {
	id := uuid.New()
	return &Experiment{
		ID:      id,
		Circuit: c,
		Shots:   shots,
		Seed:    seed,
		runner:  sim.NewRunner(),
		log: logger.With().
			Str("component", "trials").
			Str("experiment", id.String()).
			Logger(),
	}
}

// Run executes all trials, fanning out across workers, and returns results
// in trial order. The first failing trial aborts the experiment; a failure
// on any trial means no results are returned at all.
func (e *Experiment) Run() ([]Result, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > e.Shots {
		workers = e.Shots
	}

	e.log.Info().
		Int("shots", e.Shots).
		Int64("seed", e.Seed).
		Int("workers", workers).
		Int("gates", len(e.Circuit.Gates)).
		Msg("running experiment")

	results := make([]Result, e.Shots)
	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				seed := e.Seed + int64(trial)
				state, reg, err := e.runner.Run(e.Circuit, seed)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[trial] = Result{Trial: trial, Seed: seed, State: state, Register: reg}
			}
		}()
	}

	for trial := 0; trial < e.Shots; trial++ {
		jobs <- trial
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		e.log.Error().Err(firstErr).Msg("experiment aborted")
		return nil, firstErr
	}
	e.log.Info().Msg("experiment complete")
	return results, nil
}
