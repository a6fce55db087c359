package task

import (
	"slices"
	"strings"
	"sync"
)

// Collector is a ResultSink that keeps every result in memory.
type Collector struct {
	mu      sync.Mutex
	results []NoteResult
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add implements ResultSink.
func (c *Collector) Add(result NoteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Results returns a copy of the collected results ordered by path.
func (c *Collector) Results() []NoteResult {
	c.mu.Lock()
	results := slices.Clone(c.results)
	c.mu.Unlock()

	slices.SortFunc(results, func(a, b NoteResult) int {
		return strings.Compare(a.Path, b.Path)
	})
	return results
}
