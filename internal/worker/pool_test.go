package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *atomic.Int32
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(context.Context) Result {
	j.counter.Add(1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter atomic.Int32
	pool := NewPool(4)
	pool.Start()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&countJob{counter: &counter})
	}
	results := pool.Wait()

	if got := counter.Load(); got != jobs {
		t.Errorf("executed %d jobs, want %d", got, jobs)
	}
	if len(results) != jobs {
		t.Errorf("collected %d results, want %d", len(results), jobs)
	}
}

func TestPool_PropagatesJobErrors(t *testing.T) {
	var counter atomic.Int32
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&countJob{counter: &counter})
	pool.Submit(&countJob{counter: &counter, fail: true})
	results := pool.Wait()

	var failed int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed results = %d, want 1", failed)
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	var counter atomic.Int32
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})
	pool.Wait()

	if counter.Load() != 1 {
		t.Error("pool with clamped worker count should still execute jobs")
	}
}

func TestPool_ShutdownStopsWorkers(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submissions after shutdown are dropped rather than blocking.
	var counter atomic.Int32
	pool.Submit(&countJob{counter: &counter})
	if counter.Load() != 0 {
		t.Error("job executed after shutdown")
	}
}
