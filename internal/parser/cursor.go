package parser

// cursor walks the lines of a note. Sub-scans move it forward past comment
// blocks, code fences and scheduling metadata; the main loop then advances
// past the line the cursor rests on.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines}
}

// done reports whether every line has been consumed.
func (c *cursor) done() bool {
	return c.pos >= len(c.lines)
}

// line returns the line under the cursor.
func (c *cursor) line() string {
	return c.lines[c.pos]
}

// peek returns the line after the cursor, if there is one.
func (c *cursor) peek() (string, bool) {
	if c.pos+1 >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos+1], true
}

func (c *cursor) advance() {
	c.pos++
}
