// Package parser finds flashcards in Markdown notes.
//
// Parse walks a note line by line in a single forward pass and classifies
// seven card shapes: single-line basic and reversed cards, multiline basic and
// reversed cards, clozes, whole-file cards and heading cards. Separators that
// appear inside code fences and HTML comments are ignored, and every card keeps
// the zero-based index of its anchor line so callers can navigate back to the
// source.
//
// The parser never fails. Malformed Markdown such as an unterminated code
// fence or comment is consumed to the end of the note, and a heading
// separator without an enclosing heading produces no card.
package parser
