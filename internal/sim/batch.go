package sim

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"rescueops-sim/internal/logging"
	"rescueops-sim/internal/telemetry"
)

// BatchOptions controls a batch of independent runs. Run i uses seed
// SeedBase + i*SeedStep.
type BatchOptions struct {
	Runs        int
	SeedBase    int64
	SeedStep    int64
	Parallelism int
}

// BatchRun is the outcome of one run in a batch.
type BatchRun struct {
	Run    int
	Seed   int64
	Result *Result
}

// RunBatch runs independent missions in parallel, at most Parallelism at a time
// (GOMAXPROCS when unset). Runs never share random sources or writers; pacing and
// metrics from setup.Options are ignored. Results come back in run order.
func RunBatch(ctx context.Context, setup Setup, opts BatchOptions) ([]BatchRun, error) {
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("runs must be > 0, got %d", opts.Runs)
	}
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	log := logging.FromContext(ctx)
	log.Info("starting batch", "runs", opts.Runs, "seed_base", opts.SeedBase, "seed_step", opts.SeedStep, "parallelism", limit)

	runs := make([]BatchRun, opts.Runs)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < opts.Runs; i++ {
		i := i // per-iteration copy (go 1.21 loop semantics)
		seed := opts.SeedBase + int64(i)*opts.SeedStep
		g.Go(func() error {
			s := setup
			s.MissionID = fmt.Sprintf("%s-run%03d", setup.MissionID, i+1)
			s.Options.TickInterval = 0
			s.Options.Metrics = nil
			m, err := s.Build(seed, nil)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			res, err := m.Run(gCtx)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			runs[i] = BatchRun{Run: i + 1, Seed: seed, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// WriteBatchSummary prints one line per run as an aligned table.
func WriteBatchSummary(w io.Writer, runs []BatchRun) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEED\tSTATUS\tPOINTS\tGAPS\tBATTERY\tFOUND\tKITS\tRESCUE\tEVACUATE")
	for _, r := range runs {
		res := r.Result
		last, _ := res.LastPoint()
		var rescue, evacuate int
		for _, p := range res.History {
			switch p.Command {
			case telemetry.CommandRescue:
				rescue++
			case telemetry.CommandEvacuate:
				evacuate++
			}
		}
		found := len(res.Robot.DetectedSites())
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%.1f\t%d/%d\t%d\t%d\t%d\n",
			r.Run, r.Seed, res.Status, len(res.History), len(res.Gaps), last.BatteryPct,
			found, len(res.Robot.Sites), res.Robot.KitsUsed(), rescue, evacuate)
	}
	return tw.Flush()
}
