package parser

import (
	"regexp"
	"strings"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// rule classifies the current line. apply reports whether the rule matched;
// the first matching rule wins.
type rule struct {
	name  string
	apply func(s *scanner, line string) bool
}

// rules is the precedence order of line classification.
var rules = []rule{
	{name: "single_line", apply: (*scanner).singleLine},
	{name: "cloze", apply: (*scanner).cloze},
	{name: "multi_line", apply: (*scanner).multiLine},
	{name: "multi_line_reversed", apply: (*scanner).multiLineReversed},
	{name: "file", apply: (*scanner).fileCard},
	{name: "heading", apply: (*scanner).headingCard},
	{name: "code_fence", apply: (*scanner).codeFence},
}

// Rules returns the names of the classification rules in precedence order.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

var (
	highlightCloze = regexp.MustCompile(`==.*?==`)
	boldCloze      = regexp.MustCompile(`\*\*.*?\*\*`)
	curlyCloze     = regexp.MustCompile(`\{\{.*?\}\}`)
)

func contains(line, sep string) bool {
	return sep != "" && strings.Contains(line, sep)
}

func equals(line, sep string) bool {
	return sep != "" && line == sep
}

// singleLine emits a card for a line holding a single-line separator. The
// reversed separator is tested first since it usually contains the basic one.
func (s *scanner) singleLine(line string) bool {
	var kind domain.CardKind
	switch {
	case contains(line, s.opts.SingleLineReversedSeparator):
		kind = domain.CardKindSingleLineReversed
	case contains(line, s.opts.SingleLineSeparator):
		kind = domain.CardKindSingleLineBasic
	default:
		return false
	}

	lineNo := s.cur.pos
	text := line
	if next, ok := s.cur.peek(); ok && strings.HasPrefix(next, schedulingMarker) {
		text += "\n" + next
		s.cur.advance()
	}
	s.emit(kind, text, lineNo)
	s.reset()
	return true
}

// cloze starts a cloze card when no other card is pending and the line
// contains enabled deletion markup.
func (s *scanner) cloze(line string) bool {
	if s.kind != "" {
		return false
	}
	if (s.opts.ConvertHighlightsToClozes && highlightCloze.MatchString(line)) ||
		(s.opts.ConvertBoldTextToClozes && boldCloze.MatchString(line)) ||
		(s.opts.ConvertCurlyBracketsToClozes && curlyCloze.MatchString(line)) {
		s.kind = domain.CardKindCloze
		s.lineNo = s.cur.pos
		return true
	}
	return false
}

func (s *scanner) multiLine(line string) bool {
	if !equals(line, s.opts.MultiLineSeparator) {
		return false
	}
	s.kind = domain.CardKindMultiLineBasic
	s.lineNo = s.cur.pos
	return true
}

func (s *scanner) multiLineReversed(line string) bool {
	if !equals(line, s.opts.MultiLineReversedSeparator) {
		return false
	}
	s.kind = domain.CardKindMultiLineReversed
	s.lineNo = s.cur.pos
	return true
}

// fileCard turns the whole note, minus its front matter and final line, into
// one card. The pending card is left alone.
func (s *scanner) fileCard(line string) bool {
	if !equals(line, s.opts.FileSeparator) {
		return false
	}
	start := frontMatterEnd(s.lines)
	end := len(s.lines) - 1
	text := ""
	if start < end {
		text = strings.Join(s.lines[start:end], "\n")
	}
	s.emit(domain.CardKindFile, text, s.cur.pos)
	return true
}

// headingCard emits the section enclosing the separator: from the nearest
// heading above it up to the next heading of the same depth.
func (s *scanner) headingCard(line string) bool {
	if !equals(line, s.opts.HeadingSeparator) {
		return false
	}
	if start, end, ok := headingSection(s.lines, s.cur.pos); ok {
		s.emit(domain.CardKindHeading, strings.Join(s.lines[start:end], "\n"), s.cur.pos)
	}
	return true
}

// codeFence copies a fenced block into the buffer verbatim so that nothing
// inside it is classified.
func (s *scanner) codeFence(line string) bool {
	fence, ok := fenceDelimiter(line)
	if !ok {
		return false
	}
	for {
		next, ok := s.cur.peek()
		if !ok {
			return true
		}
		s.cur.advance()
		s.buf = append(s.buf, next)
		if strings.HasPrefix(next, fence) {
			return true
		}
	}
}

// fenceDelimiter returns the run of backticks or tildes opening a code fence.
func fenceDelimiter(line string) (string, bool) {
	if !strings.HasPrefix(line, "```") && !strings.HasPrefix(line, "~~~") {
		return "", false
	}
	n := 0
	for n < len(line) && line[n] == line[0] {
		n++
	}
	return line[:n], true
}
