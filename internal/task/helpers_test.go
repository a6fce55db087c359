package task

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// stubTask is a Task whose Execute delegates to run.
type stubTask struct {
	id   uuid.UUID
	run  func(ctx context.Context) error
	runs atomic.Int32
}

func newStubTask(run func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), run: run}
}

func (s *stubTask) ID() uuid.UUID      { return s.id }
func (s *stubTask) Type() string       { return "stub" }
func (s *stubTask) Status() TaskStatus { return TaskStatusPending }

func (s *stubTask) Execute(ctx context.Context) error {
	s.runs.Add(1)
	if s.run == nil {
		return nil
	}
	return s.run(ctx)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
