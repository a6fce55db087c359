package domain

import (
	"errors"
	"fmt"
)

// CardKind identifies the shape of a card found in a note. The scheduler
// reads it to decide how the card is quizzed.
type CardKind string

// Possible card kinds
const (
	CardKindSingleLineBasic    CardKind = "single_line_basic"
	CardKindSingleLineReversed CardKind = "single_line_reversed"
	CardKindMultiLineBasic     CardKind = "multi_line_basic"
	CardKindMultiLineReversed  CardKind = "multi_line_reversed"
	CardKindCloze              CardKind = "cloze"
	CardKindFile               CardKind = "file"
	CardKindHeading            CardKind = "heading"
)

// Card-specific validation errors
var (
	// ErrInvalidCardKind is returned when a card kind is not one of the known kinds.
	ErrInvalidCardKind = errors.New("invalid card kind")

	// ErrCardTextEmpty is returned when a card has no text.
	ErrCardTextEmpty = errors.New("card text cannot be empty")

	// ErrCardLineNegative is returned when a card's anchor line is negative.
	ErrCardLineNegative = errors.New("card line number cannot be negative")
)

// CardKinds lists every kind in a stable order.
func CardKinds() []CardKind {
	return []CardKind{
		CardKindSingleLineBasic,
		CardKindSingleLineReversed,
		CardKindMultiLineBasic,
		CardKindMultiLineReversed,
		CardKindCloze,
		CardKindFile,
		CardKindHeading,
	}
}

// ParseCardKind converts a kind name into a CardKind.
func ParseCardKind(s string) (CardKind, error) {
	kind := CardKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCardKind, s)
	}
	return kind, nil
}

// IsValid reports whether k is one of the known kinds.
func (k CardKind) IsValid() bool {
	switch k {
	case CardKindSingleLineBasic,
		CardKindSingleLineReversed,
		CardKindMultiLineBasic,
		CardKindMultiLineReversed,
		CardKindCloze,
		CardKindFile,
		CardKindHeading:
		return true
	default:
		return false
	}
}

// IsSingleLine reports whether cards of this kind occupy a single source line.
func (k CardKind) IsSingleLine() bool {
	return k == CardKindSingleLineBasic || k == CardKindSingleLineReversed
}

// IsReversed reports whether the card should also be asked back to front.
func (k CardKind) IsReversed() bool {
	return k == CardKindSingleLineReversed || k == CardKindMultiLineReversed
}

func (k CardKind) String() string {
	return string(k)
}

// Card is one flashcard found in a note.
// Text is the exact source substring that makes up the card, with internal
// newlines preserved. LineNumber is the zero-based index of the card's anchor
// line (its separator line, the line that triggered a cloze, or the heading
// separator) in the newline-normalized note.
type Card struct {
	Kind       CardKind `json:"kind"`
	Text       string   `json:"text"`
	LineNumber int      `json:"line_number"`
}

// NewCard creates a Card and validates it.
func NewCard(kind CardKind, text string, lineNumber int) (Card, error) {
	card := Card{
		Kind:       kind,
		Text:       text,
		LineNumber: lineNumber,
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation. A file card may be empty
// when its separator is the last line of the note.
func (c Card) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidCardKind, c.Kind)
	}

	if c.Text == "" && c.Kind != CardKindFile {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCardTextEmpty)
	}

	if c.LineNumber < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCardLineNegative)
	}

	return nil
}
