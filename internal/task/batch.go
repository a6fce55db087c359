package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/parser"
)

// ExtractAll extracts cards from every note in paths on a worker pool sized by
// cfg and returns one result per path, ordered by path. Per-note failures are
// reported in NoteResult.Err; the returned error is non-nil only when ctx ends
// before every note was processed.
func ExtractAll(
	ctx context.Context,
	paths []string,
	generator generation.Generator,
	opts parser.Options,
	cfg config.BatchConfig,
	logger *slog.Logger,
) ([]NoteResult, error) {
	logger = logger.With("batch_id", uuid.New())
	logger.Info("batch extraction started",
		"note_count", len(paths),
		"workers", cfg.Workers)

	var failed atomic.Int64
	queue := NewTaskQueue(cfg.QueueSize, logger)
	pool := NewWorkerPoolWithContext(ctx, queue, WorkerPoolConfig{
		WorkerCount: cfg.Workers,
		OnError: func(Task, error) {
			failed.Add(1)
		},
	}, logger)
	collector := NewCollector()
	pool.Start()

	for _, path := range paths {
		t := NewNoteExtractionTask(path, opts, cfg.Tags, generator, collector, logger)
		if err := queue.EnqueueWait(ctx, t); err != nil {
			queue.Close()
			pool.Stop()
			return collector.Results(), fmt.Errorf("batch extraction interrupted: %w", err)
		}
	}

	queue.Close()
	pool.Wait()

	results := collector.Results()
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch extraction interrupted: %w", err)
	}

	logger.Info("batch extraction finished",
		"note_count", len(results),
		"failed_count", failed.Load())
	return results, nil
}
