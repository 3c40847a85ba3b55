package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of blocking work.
type Task func() error

type job struct {
	run  Task
	done chan error
}

// Pool runs blocking tasks on a fixed number of workers. Submitters wait
// for their task to finish, so request handling stays synchronous from the
// client's view while the number of concurrent engine runs stays bounded.
type Pool struct {
	jobs   chan job
	size   int
	wg     sync.WaitGroup
	logger *zap.Logger
}

// New creates a pool with size workers.
func New(size int, logger *zap.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		jobs:   make(chan job),
		size:   size,
		logger: logger,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.done <- j.run()
			}
		}()
	}
	p.logger.Info("worker pool started", zap.Int("workers", p.size))
}

// Stop closes the pool and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

// Submit hands fn to a worker and waits for it to complete. The context
// only bounds the wait for a free worker; a task that has started is never
// interrupted.
func (p *Pool) Submit(ctx context.Context, fn Task) error {
	j := job{run: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-j.done
}
