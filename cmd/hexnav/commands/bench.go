package commands

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/pathfind"
)

type benchOptions struct {
	mapName string
	pairs   int
	workers int
	seed    uint64
}

type benchResult struct {
	found        bool
	disconnected bool
	cost         int
	expanded     int
	elapsed      time.Duration
}

func newBenchCmd(a *app) *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run many searches concurrently over one map",
		Long: `bench picks random pairs of water cells and searches them in parallel.
All searches share the same read-only grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.mapName, "map", "m", "", "map name or path (default from config)")
	cmd.Flags().IntVar(&opts.pairs, "pairs", 1000, "number of start/destination pairs")
	cmd.Flags().IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "concurrent searches")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed for pair selection")
	return cmd
}

func runBench(cmd *cobra.Command, a *app, opts *benchOptions) error {
	if opts.pairs <= 0 || opts.workers <= 0 {
		return reported(a.print.Error("Invalid flags", "--pairs and --workers must be positive."))
	}
	a.useMap(opts.mapName)
	g, err := levels.LoadMap(a.mapName())
	if err != nil {
		return reported(a.print.Error("Cannot load map", err.Error(), "Run 'hexnav maps' to list the built-in maps"))
	}

	runID := uuid.NewString()
	logger := a.logger.With("bench_id", runID)
	cells := g.Cells()
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	pairs := make([][2]*hexgrid.Cell, opts.pairs)
	for i := range pairs {
		pairs[i] = [2]*hexgrid.Cell{cells[rng.IntN(len(cells))], cells[rng.IntN(len(cells))]}
	}

	a.print.Step("bench %s: %d pairs on %s (%d cells) with %d workers\n", runID[:8], opts.pairs, a.mapName(), len(cells), opts.workers)
	finder := pathfind.New(logger)
	results := make([]benchResult, len(pairs))
	began := time.Now()

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(opts.workers)
	for i, p := range pairs {
		eg.Go(func() error {
			res, err := finder.Find(ctx, p[0], p[1])
			switch {
			case errors.Is(err, pathfind.ErrDisconnected):
				results[i] = benchResult{disconnected: true, expanded: res.Expanded, elapsed: res.Elapsed}
				return nil
			case err != nil:
				return err
			}
			results[i] = benchResult{found: true, cost: res.Cost, expanded: res.Expanded, elapsed: res.Elapsed}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	wall := time.Since(began)

	var found, disconnected, expanded, cost int
	durations := make([]time.Duration, 0, len(results))
	for _, r := range results {
		if r.found {
			found++
			cost += r.cost
		}
		if r.disconnected {
			disconnected++
		}
		expanded += r.expanded
		durations = append(durations, r.elapsed)
	}
	slices.Sort(durations)

	logger.Info("bench finished", "pairs", opts.pairs, "found", found, "disconnected", disconnected, "wall_ms", wall.Milliseconds())
	a.print.Success("%d searches in %s (%.0f/s)\n", len(results), wall.Round(time.Microsecond), float64(len(results))/wall.Seconds())
	a.print.Info("  found:        %d\n", found)
	a.print.Info("  disconnected: %d\n", disconnected)
	if found > 0 {
		a.print.Info("  mean cost:    %.2f\n", float64(cost)/float64(found))
	}
	a.print.Info("  expanded:     %.1f mean\n", float64(expanded)/float64(len(results)))
	a.print.Info("  p50 / p99:    %s / %s\n", percentile(durations, 50), percentile(durations, 99))
	return nil
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := (len(sorted) - 1) * p / 100
	return sorted[i]
}
