package task

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	callQueued int32 = iota
	callRunning
	callDone
	callAbandoned
)

// callTask runs a caller-supplied function on a worker. The function sees a
// context that is cancelled when either the caller's context or the pool's
// context is done.
type callTask struct {
	id     uuid.UUID
	ctx    context.Context
	fn     func(ctx context.Context) error
	state  atomic.Int32
	failed atomic.Bool
	done   chan struct{}
	err    error
}

func newCallTask(ctx context.Context, fn func(ctx context.Context) error) *callTask {
	return &callTask{
		id:   uuid.New(),
		ctx:  ctx,
		fn:   fn,
		done: make(chan struct{}),
	}
}

func (t *callTask) ID() uuid.UUID { return t.id }

func (t *callTask) Type() string { return TaskTypeProviderCall }

func (t *callTask) Status() TaskStatus {
	switch t.state.Load() {
	case callQueued:
		return TaskStatusPending
	case callRunning:
		return TaskStatusProcessing
	case callAbandoned:
		return TaskStatusAbandoned
	default:
		if t.failed.Load() {
			return TaskStatusFailed
		}
		return TaskStatusCompleted
	}
}

// Execute runs fn unless the caller has already abandoned the task.
func (t *callTask) Execute(workerCtx context.Context) error {
	if !t.state.CompareAndSwap(callQueued, callRunning) {
		return nil
	}

	var err error
	switch {
	case workerCtx.Err() != nil:
		err = fmt.Errorf("%w: %w", ErrPoolStopped, workerCtx.Err())
	case t.ctx.Err() != nil:
		err = t.ctx.Err()
	default:
		runCtx, cancel := context.WithCancel(t.ctx)
		stop := context.AfterFunc(workerCtx, cancel)
		err = t.fn(runCtx)
		stop()
		cancel()
	}

	t.finish(err)
	return err
}

// abandon marks a still-queued task as never to be run. It reports whether
// the task was abandoned; false means a worker already picked it up.
func (t *callTask) abandon() bool {
	return t.state.CompareAndSwap(callQueued, callAbandoned)
}

func (t *callTask) finish(err error) {
	t.err = err
	t.failed.Store(err != nil)
	t.state.Store(callDone)
	close(t.done)
}
