package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolStopped is returned for work submitted to, or still queued in, a
// stopped pool.
var ErrPoolStopped = errors.New("worker pool is stopped")

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// queue holds the tasks to be processed
	queue Queue

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is cancelled when the pool stops
	ctx    context.Context
	cancel context.CancelFunc

	started atomic.Bool
	stopped atomic.Bool

	logger *slog.Logger

	// errorHandler is called when a task execution fails
	// If nil, errors are only logged
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 4,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(queue Queue, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	logger = logger.With("component", "worker_pool")

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures.
// It must be called before Start.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines. Calling Start more than once has no
// effect.
func (p *WorkerPool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.logger.Info("starting worker pool", "worker_count", p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop cancels running tasks, closes the queue and waits for every worker to
// exit. Tasks still buffered are failed with ErrPoolStopped.
func (p *WorkerPool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.logger.Info("stopping worker pool")
	p.cancel()
	p.queue.Close()
	p.wg.Wait()

	drained := 0
	for t := range p.queue.GetChannel() {
		_ = t.Execute(p.ctx)
		drained++
	}
	p.logger.Info("worker pool stopped", "drained_tasks", drained)
}

// Run executes fn on a worker and waits for it to finish. When ctx is done
// before a worker picks the call up, Run returns ctx.Err() without running
// fn. The context passed to fn is cancelled when ctx is done or the pool
// stops.
func (p *WorkerPool) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.stopped.Load() {
		return ErrPoolStopped
	}

	t := newCallTask(ctx, fn)
	if err := p.queue.EnqueueContext(ctx, t); err != nil {
		if errors.Is(err, ErrQueueClosed) {
			return fmt.Errorf("%w: %w", ErrPoolStopped, err)
		}
		return err
	}

	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		if t.abandon() {
			p.logger.DebugContext(ctx, "queued task abandoned by caller", "task_id", t.ID())
			return ctx.Err()
		}
		<-t.done
		return t.err
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	log := p.logger.With("worker_id", id)
	tasks := p.queue.GetChannel()

	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			p.execute(log, t)
		}
	}
}

func (p *WorkerPool) execute(log *slog.Logger, t Task) {
	start := time.Now()
	err := t.Execute(p.ctx)
	if err == nil {
		log.Debug("task completed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"status", string(t.Status()),
			"duration_ms", time.Since(start).Milliseconds())
		return
	}

	log.Warn("task failed",
		"task_id", t.ID(),
		"task_type", t.Type(),
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err)
	if p.errorHandler != nil {
		p.errorHandler(t, err)
	}
}
