package parser

import (
	"slices"
	"testing"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(kind domain.CardKind, text string, line int) domain.Card {
	return domain.Card{Kind: kind, Text: text, LineNumber: line}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cards := Parse("", DefaultOptions())
	assert.NotNil(t, cards)
	assert.Empty(t, cards)

	assert.Empty(t, Parse("\n\n\n", DefaultOptions()))
	assert.Empty(t, Parse("just some prose\nwith no cards", DefaultOptions()))
}

func TestParse_SingleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "basic",
			text: "Q::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 0)},
		},
		{
			name: "reversed",
			text: "Q:::A",
			want: []domain.Card{card(domain.CardKindSingleLineReversed, "Q:::A", 0)},
		},
		{
			name: "scheduling metadata kept",
			text: "Q::A\n<!--SR:!2024-01-01,3,250-->\nafter",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A\n<!--SR:!2024-01-01,3,250-->", 0)},
		},
		{
			name: "earlier buffer discarded",
			text: "some intro\nQ::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 1)},
		},
		{
			name: "consecutive lines",
			text: "A::1\nB:::2\nC::3",
			want: []domain.Card{
				card(domain.CardKindSingleLineBasic, "A::1", 0),
				card(domain.CardKindSingleLineReversed, "B:::2", 1),
				card(domain.CardKindSingleLineBasic, "C::3", 2),
			},
		},
		{
			name: "crlf normalized",
			text: "Q::A\r\nR::B\r\n",
			want: []domain.Card{
				card(domain.CardKindSingleLineBasic, "Q::A", 0),
				card(domain.CardKindSingleLineBasic, "R::B", 1),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_SingleLineDropsPendingCard(t *testing.T) {
	t.Parallel()

	cards := Parse("Front\n?\nBack\nQ::A\nmore\n", DefaultOptions())
	assert.Equal(t, []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 3)}, cards)
}

func TestParse_MultiLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "basic flushed by blank line",
			text: "Front\nmore\n?\nBack\n\nother",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "Front\nmore\n?\nBack", 2)},
		},
		{
			name: "reversed",
			text: "Front\n??\nBack\n",
			want: []domain.Card{card(domain.CardKindMultiLineReversed, "Front\n??\nBack", 1)},
		},
		{
			name: "flushed at end of note",
			text: "Front\n?\nBack",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "Front\n?\nBack", 1)},
		},
		{
			name: "separator must be the whole line",
			text: "Why?\nBecause\n",
			want: []domain.Card{},
		},
		{
			name: "two cards",
			text: "A\n?\nB\n\nC\n??\nD",
			want: []domain.Card{
				card(domain.CardKindMultiLineBasic, "A\n?\nB", 1),
				card(domain.CardKindMultiLineReversed, "C\n??\nD", 5),
			},
		},
		{
			name: "whitespace line is not blank",
			text: "A\n?\n   \nB",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "A\n?\n   \nB", 1)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_Cloze(t *testing.T) {
	t.Parallel()

	curly := DefaultOptions()
	curly.ConvertCurlyBracketsToClozes = true

	noHighlights := DefaultOptions()
	noHighlights.ConvertHighlightsToClozes = false

	tests := []struct {
		name string
		text string
		opts Options
		want []domain.Card
	}{
		{
			name: "highlight",
			text: "The ==capital== of France\nis Paris\n\nafter",
			opts: DefaultOptions(),
			want: []domain.Card{card(domain.CardKindCloze, "The ==capital== of France\nis Paris", 0)},
		},
		{
			name: "bold",
			text: "intro\nA **bold** word",
			opts: DefaultOptions(),
			want: []domain.Card{card(domain.CardKindCloze, "intro\nA **bold** word", 1)},
		},
		{
			name: "curly disabled by default",
			text: "A {{curly}} word",
			opts: DefaultOptions(),
			want: []domain.Card{},
		},
		{
			name: "curly enabled",
			text: "A {{curly}} word",
			opts: curly,
			want: []domain.Card{card(domain.CardKindCloze, "A {{curly}} word", 0)},
		},
		{
			name: "highlight disabled",
			text: "The ==capital== of France",
			opts: noHighlights,
			want: []domain.Card{},
		},
		{
			name: "pending cloze keeps its anchor",
			text: "==a==\n==b==",
			opts: DefaultOptions(),
			want: []domain.Card{card(domain.CardKindCloze, "==a==\n==b==", 0)},
		},
		{
			name: "single marker is not a cloze",
			text: "a == b",
			opts: DefaultOptions(),
			want: []domain.Card{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, tc.opts))
		})
	}
}

func TestParse_ClozeDoesNotOverrideMultiLine(t *testing.T) {
	t.Parallel()

	cards := Parse("Front\n?\nThe ==answer==\n", DefaultOptions())
	assert.Equal(t, []domain.Card{card(domain.CardKindMultiLineBasic, "Front\n?\nThe ==answer==", 1)}, cards)
}

func TestParse_CodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "separator inside fence is inert",
			text: "```\nfront::back\n```",
			want: []domain.Card{},
		},
		{
			name: "tilde fence",
			text: "~~~~\na::b\n?\n~~~~",
			want: []domain.Card{},
		},
		{
			name: "fence inside multiline card",
			text: "Question\n?\n```go\nx::y\n```\n\nnext",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "Question\n?\n```go\nx::y\n```", 1)},
		},
		{
			name: "blank lines inside fence do not flush",
			text: "Question\n?\n```\na\n\nb\n```\nend",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "Question\n?\n```\na\n\nb\n```\nend", 1)},
		},
		{
			name: "unterminated fence consumes the note",
			text: "?\n```\na::b\n\nc::d",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "?\n```\na::b\n\nc::d", 0)},
		},
		{
			name: "line after fence is classified again",
			text: "```\ncode\n```\nQ::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 3)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "block comment skipped",
			text: "<!--\na::b\n-->\nQ::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 3)},
		},
		{
			name: "one line comment",
			text: "<!-- note -->\nQ::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 1)},
		},
		{
			name: "unterminated comment",
			text: "<!--\na::b\nc::d",
			want: []domain.Card{},
		},
		{
			name: "comment excluded from pending card",
			text: "Front\n?\n<!-- hidden -->\nBack",
			want: []domain.Card{card(domain.CardKindMultiLineBasic, "Front\n?\nBack", 1)},
		},
		{
			name: "line after comment is not skipped",
			text: "?\nfront\n<!-- c -->\n\nafter::x",
			want: []domain.Card{
				card(domain.CardKindMultiLineBasic, "?\nfront", 0),
				card(domain.CardKindSingleLineBasic, "after::x", 4),
			},
		},
		{
			name: "orphan scheduling comment is text",
			text: "<!--SR:!2024-01-01,3,250-->\nQ::A",
			want: []domain.Card{card(domain.CardKindSingleLineBasic, "Q::A", 1)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_FileCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "front matter excluded",
			text: "---\nkey: v\n---\ncontent\nmore\n%%file%%",
			want: []domain.Card{card(domain.CardKindFile, "content\nmore", 5)},
		},
		{
			name: "no front matter",
			text: "a\nb\n%%file%%",
			want: []domain.Card{card(domain.CardKindFile, "a\nb", 2)},
		},
		{
			name: "unclosed front matter kept",
			text: "---\nx\n%%file%%",
			want: []domain.Card{card(domain.CardKindFile, "---\nx", 2)},
		},
		{
			name: "rule not at top is content",
			text: "a\n---\nb\n%%file%%",
			want: []domain.Card{card(domain.CardKindFile, "a\n---\nb", 3)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_FileCardKeepsPendingCard(t *testing.T) {
	t.Parallel()

	cards := Parse("?\nfront\n%%file%%\nback\n\n", DefaultOptions())
	require.Len(t, cards, 2)
	assert.Equal(t, card(domain.CardKindMultiLineBasic, "?\nfront\n%%file%%\nback", 0), cards[0])
	assert.Equal(t, card(domain.CardKindFile, "?\nfront\n%%file%%\nback\n", 2), cards[1])
}

func TestParse_HeadingCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Card
	}{
		{
			name: "directly below heading",
			text: "## Topic\n%%heading%%\ncontent\n## Other\ntail",
			want: []domain.Card{card(domain.CardKindHeading, "## Topic\n%%heading%%\ncontent", 1)},
		},
		{
			name: "nearest heading above",
			text: "# Title\n## Topic\nBody\n%%heading%%\n## Next\ntext",
			want: []domain.Card{card(domain.CardKindHeading, "## Topic\nBody\n%%heading%%", 3)},
		},
		{
			name: "other depths do not close the section",
			text: "## A\n%%heading%%\n### sub\nx\n# Top\n## B",
			want: []domain.Card{card(domain.CardKindHeading, "## A\n%%heading%%\n### sub\nx\n# Top", 1)},
		},
		{
			name: "no heading above",
			text: "intro\n%%heading%%\n## A",
			want: []domain.Card{},
		},
		{
			name: "no closing heading",
			text: "## A\n%%heading%%\ntext",
			want: []domain.Card{},
		},
		{
			name: "hash without space is not a heading",
			text: "#tag\n%%heading%%\n#tag",
			want: []domain.Card{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text, DefaultOptions()))
		})
	}
}

func TestParse_HeadingSeparatorThatIsAHeading(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.HeadingSeparator = "## Card"

	cards := Parse("## Card\nbody\n## Next", opts)

	assert.NotNil(t, cards)
	assert.Empty(t, cards, "an empty section yields no card")
}

func TestHeadingSection(t *testing.T) {
	t.Parallel()

	lines := []string{"## A", "%%heading%%", "x", "## B"}
	start, end, ok := headingSection(lines, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	_, _, ok = headingSection(lines, 0)
	assert.False(t, ok, "a heading line has an empty section of its own")
}

func TestParse_Precedence(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"single_line", "cloze", "multi_line", "multi_line_reversed", "file", "heading", "code_fence"},
		Rules())

	tests := []struct {
		name string
		text string
		want domain.CardKind
	}{
		{name: "single line over cloze", text: "==a== :: b", want: domain.CardKindSingleLineBasic},
		{name: "reversed over basic", text: "a ::: b :: c", want: domain.CardKindSingleLineReversed},
		{name: "single line over code fence", text: "```a::b", want: domain.CardKindSingleLineBasic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards := Parse(tc.text, DefaultOptions())
			require.Len(t, cards, 1)
			assert.Equal(t, tc.want, cards[0].Kind)
		})
	}
}

func TestParse_EmptySeparatorsNeverMatch(t *testing.T) {
	t.Parallel()

	opts := Options{}
	assert.Empty(t, Parse("plain\nQ::A\n?\nB", opts))
}

func TestParse_CustomSeparators(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.SingleLineSeparator = "=>"
	opts.SingleLineReversedSeparator = "<=>"
	opts.MultiLineSeparator = "---?"

	cards := Parse("a => b\nc <=> d\nQ::A\n\nFront\n---?\nBack", opts)
	assert.Equal(t, []domain.Card{
		card(domain.CardKindSingleLineBasic, "a => b", 0),
		card(domain.CardKindSingleLineReversed, "c <=> d", 1),
		card(domain.CardKindMultiLineBasic, "Front\n---?\nBack", 5),
	}, cards)
}

func TestParse_LineNumbersNonDecreasing(t *testing.T) {
	t.Parallel()

	notes := []string{
		"?\nfront\n%%file%%\nback\n\n",
		"## A\nFront\n?\n%%heading%%\nBack\n## B\n",
		"x::y\n\nQ\n??\nA\n\n==c== loze\n\n## H\n%%heading%%\n## I\n%%file%%",
	}

	for _, note := range notes {
		cards := Parse(note, DefaultOptions())
		assert.True(t, slices.IsSortedFunc(cards, func(a, b domain.Card) int {
			return a.LineNumber - b.LineNumber
		}), "cards out of order for %q: %v", note, cards)
	}
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	note := "# Deck\nQ::A\n\nFront\n?\nBack\n\nThe ==x== y\n\n## H\n%%heading%%\n## I\n"
	assert.Equal(t, Parse(note, DefaultOptions()), Parse(note, DefaultOptions()))
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	note := "Q::A\n<!--SR:!2024-01-01,3,250-->\n\n" +
		"R:::B\n\n" +
		"Front\nmore\n?\nBack\n\n" +
		"Up\n??\nDown\n\n" +
		"The ==capital== of France\nis Paris\n"

	cards := Parse(note, DefaultOptions())
	require.Len(t, cards, 5)

	for _, c := range cards {
		t.Run(string(c.Kind), func(t *testing.T) {
			again := Parse(c.Text, DefaultOptions())
			require.Len(t, again, 1)
			assert.Equal(t, c.Kind, again[0].Kind)
			assert.Equal(t, c.Text, again[0].Text)
		})
	}
}
