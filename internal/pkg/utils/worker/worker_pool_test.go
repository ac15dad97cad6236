package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Stop()

	var executed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		pool.Submit(func() {
			executed.Add(1)
			wg.Done()
		})
	}
	wg.Wait()

	assert.Equal(t, int64(20), executed.Load())
}

func TestSubmitDistributesAcrossWorkers(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Stop()

	// Park every worker on a gate; with a single-worker dispatch the
	// second submit would block behind the first.
	gate := make(chan struct{})
	var parked sync.WaitGroup
	parked.Add(3)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			pool.Submit(func() {
				parked.Done()
				<-gate
			})
		}
		parked.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks were not dispatched to distinct workers")
	}
	close(gate)
}

func TestSubmitAfterStopReturns(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Stop()

	done := make(chan struct{})
	go func() {
		pool.Submit(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after Stop")
	}
}
