package runtime

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ruleJob is one unit of parallel work dispatched to the pool: evaluate (or
// execute the action for) a single rule against the group's table snapshot. This
// mirrors the teacher's worker.Pool job-queue shape, but is rebuilt on
// errgroup.Group rather than the teacher's hand-rolled channel/goroutine
// pair — errgroup already gives bounded fan-out (SetLimit), first-error
// capture, and context cancellation, which the teacher's pool implemented
// by hand for a job queue that this engine doesn't need (no persistent
// queue; a rule group is a closed, known-size batch).
type ruleJob func(ctx context.Context) error

// workerPool runs ruleJob batches with bounded concurrency, mirroring
// worker.Pool's Config.Queues concurrency-per-queue limit but specialized
// to the engine's single "parallel rule group" queue.
type workerPool struct {
	limit int
}

// newWorkerPool builds a pool that runs at most `workers` jobs concurrently
// (spec §9 default 4, engine config EngineConfig.Workers).
func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 4
	}
	return &workerPool{limit: workers}
}

// run executes every job in jobs, capped at the pool's concurrency limit,
// and returns the first error encountered (if any) after all jobs have
// either completed or the group was canceled by that first error.
func (p *workerPool) run(ctx context.Context, jobs []ruleJob) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return job(gctx)
		})
	}
	return g.Wait()
}
