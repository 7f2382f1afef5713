package furnace

import (
	"context"
	"runtime"

	"github.com/df07/go-scattering/pkg/core"
	"github.com/df07/go-scattering/pkg/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"
)

var logger = log.New("furnace")

// ErrInvalidConfig is returned for unusable furnace configurations
var ErrInvalidConfig = xerrors.New("invalid furnace configuration")

// Config controls how estimates are distributed over workers
type Config struct {
	Workers        int    // Concurrent tasks; <= 0 uses every CPU
	Tasks          int    // Independent sample streams
	SamplesPerTask int    // Samples drawn by each task
	Seed           uint64 // Root seed; tasks fork their streams from it
}

// DefaultConfig returns the configuration used by the command line
func DefaultConfig() Config {
	return Config{
		Workers:        runtime.NumCPU(),
		Tasks:          64,
		SamplesPerTask: 4096,
		Seed:           42,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Tasks <= 0 {
		return xerrors.Errorf("tasks = %d: %w", c.Tasks, ErrInvalidConfig)
	}
	if c.SamplesPerTask <= 0 {
		return xerrors.Errorf("samples per task = %d: %w", c.SamplesPerTask, ErrInvalidConfig)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Result is a merged per-channel estimate
type Result struct {
	Mean     []float64
	StdErr   []float64
	Samples  int
	Failures int
}

// sampleFunc draws one estimate into stats
type sampleFunc func(sc *core.SamplingContext, stats *Accumulator)

// runTasks runs cfg.Tasks tasks of cfg.SamplesPerTask samples each. Every
// task owns a sampling context forked from the root seed and its own
// accumulator; accumulators are merged in task order, so the result does not
// depend on the number of workers.
func runTasks(ctx context.Context, cfg Config, channels int, sample sampleFunc) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	root := core.NewSamplingContext(cfg.Seed, 0)
	streams := root.Fork(cfg.Tasks)
	stats := make([]*Accumulator, cfg.Tasks)

	workers := cfg.workers()
	logger.Debugf("running %d tasks x %d samples on %d workers", cfg.Tasks, cfg.SamplesPerTask, workers)

	// Use errgroup and semaphore to limit concurrency.
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	for id := range streams {
		if err := sem.Acquire(ctx, 1); err != nil {
			_ = eg.Wait()
			return Result{}, xerrors.Errorf("while scheduling task %d: %w", id, err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}

			acc := NewAccumulator(channels)
			sc := &streams[id]
			for i := 0; i < cfg.SamplesPerTask; i++ {
				sample(sc, acc)
			}
			stats[id] = acc
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Result{}, xerrors.Errorf("while waiting for furnace tasks: %w", err)
	}

	total := NewAccumulator(channels)
	for _, acc := range stats {
		total.Merge(acc)
	}

	return Result{
		Mean:     total.Mean(),
		StdErr:   total.StdErr(),
		Samples:  total.Count(),
		Failures: total.Failures(),
	}, nil
}
