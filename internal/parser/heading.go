package parser

import "regexp"

const frontMatterDelimiter = "---"

var headingPattern = regexp.MustCompile(`^#{1,6}($| )`)

// headingDepth returns the number of leading '#' characters of a Markdown
// heading line.
func headingDepth(line string) (int, bool) {
	if !headingPattern.MatchString(line) {
		return 0, false
	}
	depth := 0
	for depth < len(line) && line[depth] == '#' {
		depth++
	}
	return depth, true
}

// headingSection finds the section around line at. It returns the index of the
// nearest heading at or above at and the index of the next heading of the same
// depth at or below at. ok is false if either heading is missing or the
// section is empty, which happens when the line at is itself a heading.
func headingSection(lines []string, at int) (start, end int, ok bool) {
	depth := 0
	start = -1
	for i := at; i >= 0; i-- {
		if d, isHeading := headingDepth(lines[i]); isHeading {
			depth, start = d, i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}

	for i := at; i < len(lines); i++ {
		if d, isHeading := headingDepth(lines[i]); isHeading && d == depth {
			return start, i, i > start
		}
	}
	return 0, 0, false
}

// frontMatterEnd returns the index of the first line after a front matter
// block that opens on the first line, or 0 when the note has none.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || lines[0] != frontMatterDelimiter {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] == frontMatterDelimiter {
			return i + 1
		}
	}
	return 0
}
