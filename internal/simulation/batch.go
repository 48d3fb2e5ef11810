package simulation

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// Scenario drives one instance from creation to whatever end state the
// caller wants hashed
type Scenario func(inst *Instance) error

// BatchConfig describes a batch run: Runs instances built from consecutive
// seeds starting at BaseSeed, each driven by the same scenario.
type BatchConfig struct {
	Runs     int
	BaseSeed int64
	Workers  int

	// Build constructs a fresh instance for the given seed
	Build func(seed int64) (*Instance, error)

	Scenario Scenario
}

// RunBatch executes the scenario across seeded instances in parallel and
// returns the final state hash per run, indexed by run. Instances never
// share RNG state, so parallelism cannot perturb results.
func RunBatch(ctx context.Context, cfg *BatchConfig) ([]uint64, error) {
	if cfg.Runs <= 0 {
		return nil, engerr.InvalidArgumentf("batch needs a positive run count, got %d", cfg.Runs)
	}
	if cfg.Build == nil || cfg.Scenario == nil {
		return nil, engerr.InvalidArgument("batch needs a build function and a scenario")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	hashes := make([]uint64, cfg.Runs)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for run := 0; run < cfg.Runs; run++ {
		run := run
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			seed := cfg.BaseSeed + int64(run)
			inst, err := cfg.Build(seed)
			if err != nil {
				return engerr.Wrapf(err, "build run %d", run)
			}
			if err := cfg.Scenario(inst); err != nil {
				return engerr.Wrapf(err, "run %d (seed %d)", run, seed)
			}

			hash, err := inst.StateHash()
			if err != nil {
				return err
			}
			hashes[run] = hash
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[SIM] batch of %d runs complete (base seed %d)", cfg.Runs, cfg.BaseSeed)
	return hashes, nil
}
