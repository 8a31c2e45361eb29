// File: pool.go
package config

import (
	"context"
	"sync"
	"time"
)

// workerPool runs each alteration apply as an independent unit of work.
// It grows without bound, like a cached thread pool: one goroutine per
// submitted task, tracked for shutdown draining.
type workerPool struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex // serializes wg.Add against the shutdown wait
	closed bool
	wg     sync.WaitGroup
}

func newWorkerPool() *workerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &workerPool{ctx: ctx, cancel: cancel}
}

// run schedules task on its own goroutine and reports whether it was
// accepted. Tasks are rejected once shutdown has begun; an accepted task
// receives the pool context and is expected to observe cancellation
// between steps.
func (p *workerPool) run(task func(ctx context.Context)) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		task(p.ctx)
	}()
	return true
}

// shutdown stops accepting tasks, drains in-flight work with a bounded
// wait, cancels the pool context when the bound is exceeded, then waits
// once more before abandoning whatever remains. It reports whether the
// pool drained cleanly within the first window.
func (p *workerPool) shutdown(drain, force time.Duration) bool {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return true
	case <-time.After(drain):
	}

	p.cancel()

	select {
	case <-done:
	case <-time.After(force):
	}
	return false
}
