package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job pairs a shape with the transformation to apply to it.
type Job struct {
	Shape          Shape
	Transformation Transformation
}

// RunBatch transforms every job concurrently and returns the results in job
// order. Every job is validated before any runs. Jobs share nothing, so the
// only coordination is the wait. It stops early and returns ctx.Err() if ctx
// is canceled.
func RunBatch(ctx context.Context, jobs []Job) ([]Shape, error) {
	for i, job := range jobs {
		if err := Validate(job.Transformation); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}

	results := make([]Shape, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Transform(job.Shape, job.Transformation)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may have stopped scheduling without any job failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
