package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

type indexed[T any] struct {
	idx  int
	item T
}

// WorkerPool. fixed number of goroutines consuming a job queue. every result keeps the submission
// index of its job, so callers can restore input order with CollectOrdered.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexed[T]
	results    chan indexed[G]
	wg         sync.WaitGroup
	submitted  int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexed[T], jobQueueSize),
		results:    make(chan indexed[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- indexed[G]{idx: job.idx, item: jobFunc(job.item)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// AddJob. not safe for concurrent use, jobs are numbered in call order.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- indexed[T]{idx: wp.submitted, item: job}
	wp.submitted++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// CollectOrdered. waits for all workers and returns results in job submission order.
// the result channel must be large enough for every job (jobQueueSize >= number of jobs).
func (wp *WorkerPool[T, G]) CollectOrdered() []G {
	wp.Wait()
	out := make([]G, wp.submitted)
	for res := range wp.results {
		out[res.idx] = res.item
	}
	return out
}

// Map runs jobFunc over jobs on numWorkers goroutines, results keep the order of jobs.
func Map[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Start(jobFunc)
	return wp.CollectOrdered()
}
