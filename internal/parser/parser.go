package parser

import (
	"cmp"
	"slices"
	"strings"

	"github.com/phrazzld/scry-notes/internal/domain"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"

	// schedulingMarker opens the comment that stores review state for the card
	// on the line above it.
	schedulingMarker = "<!--SR:"
)

// Parse returns the flashcards found in text, ordered by anchor line.
// Identical input and options always produce identical output.
func Parse(text string, opts Options) []domain.Card {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	s := &scanner{
		opts:  opts,
		lines: lines,
		cur:   newCursor(lines),
		cards: make([]domain.Card, 0),
	}
	return s.run()
}

// scanner holds the state of one pass. At most one card is pending at a
// time; it is flushed by a blank line or the end of the note.
type scanner struct {
	opts  Options
	lines []string
	cur   *cursor

	buf    []string
	kind   domain.CardKind
	lineNo int

	cards []domain.Card
}

func (s *scanner) run() []domain.Card {
	for ; !s.cur.done(); s.cur.advance() {
		line := s.cur.line()

		if line == "" {
			s.flush()
			continue
		}
		if strings.HasPrefix(line, commentOpen) && !strings.HasPrefix(line, schedulingMarker) {
			s.skipComment()
			continue
		}

		s.buf = append(s.buf, line)
		for _, r := range rules {
			if r.apply(s, line) {
				break
			}
		}
	}

	if s.kind != "" && len(s.buf) > 0 {
		s.emit(s.kind, strings.Join(s.buf, "\n"), s.lineNo)
	}

	// File and heading cards are emitted as soon as their separator is seen,
	// possibly ahead of an older pending card.
	slices.SortStableFunc(s.cards, func(a, b domain.Card) int {
		return cmp.Compare(a.LineNumber, b.LineNumber)
	})
	return s.cards
}

// flush emits the pending card, if any, and clears the buffer.
func (s *scanner) flush() {
	if s.kind != "" {
		s.emit(s.kind, strings.Join(s.buf, "\n"), s.lineNo)
	}
	s.reset()
}

func (s *scanner) reset() {
	s.buf = s.buf[:0]
	s.kind = ""
}

func (s *scanner) emit(kind domain.CardKind, text string, lineNo int) {
	s.cards = append(s.cards, domain.Card{Kind: kind, Text: text, LineNumber: lineNo})
}

// skipComment leaves the cursor on the first line, starting with the current
// one, that closes the comment, or on the last line of the note.
func (s *scanner) skipComment() {
	for !strings.Contains(s.cur.line(), commentClose) {
		if _, ok := s.cur.peek(); !ok {
			return
		}
		s.cur.advance()
	}
}
