package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a queued call.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	// TaskStatusAbandoned marks a call whose caller gave up before a worker
	// picked it up. Abandoned tasks are skipped.
	TaskStatusAbandoned TaskStatus = "abandoned"
)

// TaskTypeProviderCall is a single blocking call to a model provider.
const TaskTypeProviderCall = "provider_call"

// Task is one unit of work for the WorkerPool.
type Task interface {
	ID() uuid.UUID
	Type() string
	Status() TaskStatus

	// Execute runs the work. ctx is cancelled when the pool stops.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consuming side of a queue.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producing side of a queue. Enqueue fails fast when
// the buffer is full; EnqueueContext waits for room until ctx is done.
type TaskQueueWriter interface {
	Enqueue(task Task) error
	EnqueueContext(ctx context.Context, task Task) error
	Close()
}

// Queue is what the WorkerPool consumes from and Run submits to.
type Queue interface {
	TaskQueueReader
	TaskQueueWriter
}
