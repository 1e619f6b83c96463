package reactor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepResult is one run of a feed-rate sweep.
type SweepResult struct {
	Feed       float64
	Dilution   float64
	Trajectory Trajectory
	Final      Point
	Washout    bool
}

// Sweep integrates base once per feed flow rate. Runs are independent and
// execute concurrently; results keep the order of feeds. The first failing
// run cancels those not yet started.
func Sweep(ctx context.Context, base Params, init Point, h float64, steps int, feeds []float64) ([]SweepResult, error) {
	results := make([]SweepResult, len(feeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, feed := range feeds {
		i, feed := i, feed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := base
			p.Feed = feed
			traj, err := Run(p, init, h, steps)
			if err != nil {
				return fmt.Errorf("feed %g: %w", feed, err)
			}
			results[i] = SweepResult{
				Feed:       feed,
				Dilution:   p.Dilution(),
				Trajectory: traj,
				Final:      traj.Last(),
				Washout:    p.Washout(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
