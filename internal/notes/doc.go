// Package notes loads Markdown notes from disk. A note keeps its raw text
// untouched, so line numbers reported by the parser point into the file as
// written, and exposes the title and tags declared in its YAML front matter.
package notes
