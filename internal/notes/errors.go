package notes

import "errors"

// Errors returned when loading notes
var (
	// ErrNoteNotFound is returned when a note path does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrNotMarkdown is returned when a path does not name a Markdown file.
	ErrNotMarkdown = errors.New("not a markdown note")

	// ErrFrontMatter is returned when a note's front matter cannot be decoded.
	ErrFrontMatter = errors.New("invalid front matter")
)
