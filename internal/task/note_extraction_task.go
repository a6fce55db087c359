package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/notes"
	"github.com/phrazzld/scry-notes/internal/parser"
)

// NoteResult is the outcome of extracting cards from one note.
type NoteResult struct {
	Path    string        `json:"path"`
	Title   string        `json:"title,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
	Cards   []domain.Card `json:"cards"`
	Skipped bool          `json:"skipped,omitempty"`
	Err     error         `json:"-"`
}

// ResultSink receives results from tasks running on many workers.
type ResultSink interface {
	Add(result NoteResult)
}

// NoteExtractionTask loads one note and extracts its cards. Notes that do not
// carry one of the filter tags are reported as skipped.
type NoteExtractionTask struct {
	id        uuid.UUID
	path      string
	opts      parser.Options
	tags      []string
	generator generation.Generator
	sink      ResultSink
	logger    *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// NewNoteExtractionTask creates a pending task for the note at path.
func NewNoteExtractionTask(
	path string,
	opts parser.Options,
	tags []string,
	generator generation.Generator,
	sink ResultSink,
	logger *slog.Logger,
) *NoteExtractionTask {
	id := uuid.New()
	return &NoteExtractionTask{
		id:        id,
		path:      path,
		opts:      opts,
		tags:      tags,
		generator: generator,
		sink:      sink,
		logger:    logger.With("task_id", id, "path", path),
		status:    TaskStatusPending,
	}
}

// ID returns the task's unique identifier
func (t *NoteExtractionTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *NoteExtractionTask) Type() string {
	return TaskTypeNoteExtraction
}

// Path returns the note path the task extracts from.
func (t *NoteExtractionTask) Path() string {
	return t.path
}

// Status returns the current task status
func (t *NoteExtractionTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *NoteExtractionTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Execute loads the note, applies the tag filter and extracts its cards. The
// result, including any failure, is always delivered to the sink.
func (t *NoteExtractionTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	result, err := t.extract(ctx)
	if err != nil {
		result.Err = err
		t.setStatus(TaskStatusFailed)
	} else {
		t.setStatus(TaskStatusCompleted)
	}
	t.sink.Add(result)

	return err
}

func (t *NoteExtractionTask) extract(ctx context.Context) (NoteResult, error) {
	result := NoteResult{Path: t.path, Cards: []domain.Card{}}

	note, err := notes.Load(t.path)
	if err != nil {
		return result, fmt.Errorf("failed to load note: %w", err)
	}
	if note.MetaErr != nil {
		t.logger.WarnContext(ctx, "front matter ignored", "error", note.MetaErr)
	}
	result.Title = note.Meta.Title
	result.Tags = note.Tags()

	if !note.HasAnyTag(t.tags) {
		t.logger.DebugContext(ctx, "note skipped, no matching tag")
		result.Skipped = true
		return result, nil
	}

	cards, err := t.generator.GenerateCards(ctx, note.Text, t.opts)
	if err != nil {
		return result, fmt.Errorf("failed to extract cards: %w", err)
	}
	result.Cards = cards

	t.logger.DebugContext(ctx, "note processed", "card_count", len(cards))
	return result, nil
}
