package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/parser"
)

// Generator defines the interface for generating flashcards from text.
type Generator interface {
	// GenerateCards returns the flashcards found in noteText using the given
	// parser options. A note without cards yields an empty slice and no error.
	GenerateCards(ctx context.Context, noteText string, opts parser.Options) ([]domain.Card, error)
}

// MarkdownGenerator finds cards with the Markdown separator parser.
type MarkdownGenerator struct {
	logger *slog.Logger
}

// NewMarkdownGenerator creates a MarkdownGenerator. A nil logger uses slog.Default().
func NewMarkdownGenerator(logger *slog.Logger) *MarkdownGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkdownGenerator{
		logger: logger.With(slog.String("component", "markdown_generator")),
	}
}

// GenerateCards implements Generator. It only fails when ctx is already done.
func (g *MarkdownGenerator) GenerateCards(
	ctx context.Context,
	noteText string,
	opts parser.Options,
) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	cards := parser.Parse(noteText, opts)
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrGenerationFailed, c.LineNumber, err)
		}
	}

	g.logger.DebugContext(ctx, "cards generated",
		slog.Int("note_bytes", len(noteText)),
		slog.Int("card_count", len(cards)))

	return cards, nil
}
