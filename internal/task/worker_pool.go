package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrTaskPanicked is reported to OnError when a task panics.
var ErrTaskPanicked = errors.New("task panicked")

// WorkerPoolConfig configures a WorkerPool.
type WorkerPoolConfig struct {
	// WorkerCount is the number of goroutines consuming the queue. Values
	// below one are raised to one.
	WorkerCount int

	// OnError, when set, is called from the worker goroutine after a task
	// fails or panics.
	OnError func(task Task, err error)
}

// WorkerPool runs tasks from a queue on a fixed set of goroutines until the
// queue is closed and drained or the pool is stopped.
type WorkerPool struct {
	queue   TaskQueueReader
	workers int
	onError func(task Task, err error)
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool that runs until stopped.
func NewWorkerPool(queue TaskQueueReader, cfg WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	return NewWorkerPoolWithContext(context.Background(), queue, cfg, logger)
}

// NewWorkerPoolWithContext creates a WorkerPool whose workers also stop, and
// whose tasks see cancellation, when parent is done.
func NewWorkerPoolWithContext(
	parent context.Context,
	queue TaskQueueReader,
	cfg WorkerPoolConfig,
	logger *slog.Logger,
) *WorkerPool {
	workers := cfg.WorkerCount
	if workers < 1 {
		logger.Warn("invalid worker count, using 1", "worker_count", cfg.WorkerCount)
		workers = 1
	}

	ctx, cancel := context.WithCancel(parent)
	return &WorkerPool{
		queue:   queue,
		workers: workers,
		onError: cfg.OnError,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Workers returns the number of worker goroutines the pool starts.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	p.wg.Add(p.workers)
	for i := range p.workers {
		go p.run(i)
	}
}

// Wait blocks until every worker has exited, either because the queue was
// closed and drained or because the pool was stopped.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
	p.cancel()
}

// Stop cancels in-flight work and waits for the workers to exit. Tasks
// still queued may be dropped.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *WorkerPool) run(workerID int) {
	defer p.wg.Done()

	tasks := p.queue.GetChannel()
	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("worker stopped", "worker_id", workerID)
			return
		case t, ok := <-tasks:
			if !ok {
				p.logger.Debug("queue drained, worker exiting", "worker_id", workerID)
				return
			}
			p.process(t, workerID)
		}
	}
}

func (p *WorkerPool) process(t Task, workerID int) {
	log := p.logger.With("task_id", t.ID(), "task_type", t.Type(), "worker_id", workerID)

	if err := p.execute(t); err != nil {
		log.Error("task failed", "error", err)
		if p.onError != nil {
			p.onError(t, err)
		}
		return
	}
	log.Debug("task completed")
}

// execute runs t, turning a panic into an error wrapping ErrTaskPanicked.
func (p *WorkerPool) execute(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return t.Execute(p.ctx)
}
