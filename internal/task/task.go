package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeNoteExtraction identifies tasks that extract the cards of one note.
const TaskTypeNoteExtraction = "note_extraction"

// Task is a unit of work run by a WorkerPool.
type Task interface {
	ID() uuid.UUID
	Type() string
	Status() TaskStatus

	// Execute runs the task. ctx is canceled when the pool stops.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consuming side of a queue, used by workers.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producing side of a queue.
type TaskQueueWriter interface {
	// Enqueue adds task without blocking. It fails with ErrQueueFull or
	// ErrQueueClosed.
	Enqueue(task Task) error

	// EnqueueWait adds task, waiting for room until ctx is done.
	EnqueueWait(ctx context.Context, task Task) error

	// Close stops further submission. Queued tasks are still delivered.
	Close()
}

var (
	_ TaskQueueReader = (*TaskQueue)(nil)
	_ TaskQueueWriter = (*TaskQueue)(nil)
)
