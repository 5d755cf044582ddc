package runtime

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	pool := newWorkerPool(2)
	var count int32
	jobs := make([]ruleJob, 10)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		}
	}
	if err := pool.run(context.Background(), jobs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 10 {
		t.Errorf("expected all 10 jobs to run, got %d", count)
	}
}

func TestWorkerPool_PropagatesFirstError(t *testing.T) {
	pool := newWorkerPool(2)
	boom := context.Canceled
	jobs := []ruleJob{
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { return nil },
	}
	if err := pool.run(context.Background(), jobs); err == nil {
		t.Fatal("expected the pool to surface the job error")
	}
}
