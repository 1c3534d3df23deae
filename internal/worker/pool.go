// Package worker provides the bounded concurrency primitives used by
// batch processing: a generic job pool and a case-file batch runner.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed number of workers.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for in-flight jobs and returns every
// result. Call it exactly once, after the last Submit.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels outstanding work and releases the workers.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
