package concurrent

import (
	"context"
	"sync"

	"github.com/lintang-b-s/graphcut/pkg/util"
)

// JobFunc handles one job. ctx is the context given to Start.
type JobFunc[T any, G any] func(ctx context.Context, job T) G

/*
WorkerPool runs a fixed number of goroutines over a buffered job queue. usage:

	wp := NewWorkerPool[job, result](workers, len(jobs))
	for _, j := range jobs { wp.AddJob(j) }
	wp.Close()
	wp.Start(ctx, handle)
	wp.Wait()
	for res := range wp.CollectResults() { ... }

results come back in completion order. once ctx is done, queued jobs are drained without
being handled, so fewer results than jobs may come back.
*/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if util.StopConcurrentOperation(ctx) {
			continue
		}
		wp.results <- jobFunc(ctx, job)
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait blocks until the job queue is closed and drained, then closes the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// AddJob blocks when the queue is full and no worker is running yet.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) NumWorkers() int {
	return wp.numWorkers
}
