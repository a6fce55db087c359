// Package generation provides the boundary between the application and the
// component that turns note text into flashcards. The Generator interface is
// what the HTTP adapter and the batch extractor depend on; MarkdownGenerator
// implements it with the separator-based Markdown parser.
package generation
