package worker

import "sync/atomic"

// WorkerPool manages a pool of workers to process tasks
type WorkerPool struct {
	workers []*Worker
	next    atomic.Uint64
	stopped atomic.Bool
}

// NewWorkerPool creates a new WorkerPool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	pool := &WorkerPool{
		workers: make([]*Worker, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		worker := NewWorker()
		worker.Start()
		pool.workers[i] = worker
	}

	return pool
}

// Stop stops all workers in the pool. Tasks submitted after Stop are
// dropped.
func (p *WorkerPool) Stop() {
	p.stopped.Store(true)
	for _, worker := range p.workers {
		worker.Stop()
	}
}

// Submit hands a task to the next worker round-robin.
func (p *WorkerPool) Submit(task Task) {
	if p.stopped.Load() {
		return
	}
	worker := p.workers[p.next.Add(1)%uint64(len(p.workers))]
	worker.Submit(task)
}
