package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	bv "github.com/ga4gh-metadata/validator"
)

// RunFunc validates the batch item at position i and returns its result.
type RunFunc func(ctx context.Context, i int) *bv.Result

// Runner fans a batch out across a bounded set of workers while preserving
// input order in the collected results.
type Runner struct {
	workers int
}

// NewRunner creates a runner with the given worker limit.
// If workers <= 0, it defaults to runtime.NumCPU().
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{workers: workers}
}

// Workers returns the configured worker limit.
func (r *Runner) Workers() int {
	return r.workers
}

// BatchResult aggregates the results of one fan-out.
type BatchResult struct {
	// Results holds one entry per batch item, in input order. Entries are
	// nil for items whose validation never ran because the batch was
	// cancelled; completed results are kept (best-effort output).
	Results []*bv.Result

	// Total is the batch size.
	Total int

	// Completed is the number of items that finished validating.
	Completed int
}

// Run executes fn for each of n items. For small batches the fan-out
// overhead is not worth paying and items run sequentially on the calling
// goroutine.
func (r *Runner) Run(ctx context.Context, n int, fn RunFunc) *BatchResult {
	if n <= 0 {
		return &BatchResult{Results: []*bv.Result{}}
	}
	if n <= 2 || r.workers == 1 {
		return r.runSequential(ctx, n, fn)
	}
	return r.runParallel(ctx, n, fn)
}

func (r *Runner) runSequential(ctx context.Context, n int, fn RunFunc) *BatchResult {
	br := &BatchResult{
		Results: make([]*bv.Result, n),
		Total:   n,
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return br
		default:
		}
		br.Results[i] = fn(ctx, i)
		br.Completed++
	}
	return br
}

func (r *Runner) runParallel(ctx context.Context, n int, fn RunFunc) *BatchResult {
	br := &BatchResult{
		Results: make([]*bv.Result, n),
		Total:   n,
	}

	completed := make([]bool, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		select {
		case <-gctx.Done():
		default:
			i := i
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				br.Results[i] = fn(gctx, i)
				completed[i] = true
				return nil
			})
			continue
		}
		break
	}

	// RunFunc never returns an error; cancellation is observed through ctx.
	_ = g.Wait()

	for i := range completed {
		if completed[i] {
			br.Completed++
		}
	}
	return br
}
