// Package domain contains the core entities of the application: the kinds
// of flashcards that can be found in a note and the Card records the parser
// emits. It is independent of any infrastructure or delivery mechanism.
package domain
