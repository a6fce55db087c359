// Package task runs units of work on a fixed pool of worker goroutines. It is
// used to extract cards from many notes concurrently: each note becomes a
// NoteExtractionTask, tasks flow through a buffered TaskQueue, and results are
// gathered by a Collector.
package task
