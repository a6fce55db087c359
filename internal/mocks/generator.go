package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/parser"
)

// MockGenerator is a generation.Generator that records its calls. It
// delegates to GenerateCardsFn when set and otherwise returns Cards and Err.
// It is safe for use from many worker goroutines.
type MockGenerator struct {
	GenerateCardsFn func(ctx context.Context, noteText string, opts parser.Options) ([]domain.Card, error)

	Cards []domain.Card
	Err   error

	GenerateCardsCalls struct {
		mu        sync.Mutex
		Count     int
		NoteTexts []string
		Options   []parser.Options
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateCards implements the generation.Generator interface
func (m *MockGenerator) GenerateCards(
	ctx context.Context,
	noteText string,
	opts parser.Options,
) ([]domain.Card, error) {
	m.GenerateCardsCalls.mu.Lock()
	m.GenerateCardsCalls.Count++
	m.GenerateCardsCalls.NoteTexts = append(m.GenerateCardsCalls.NoteTexts, noteText)
	m.GenerateCardsCalls.Options = append(m.GenerateCardsCalls.Options, opts)
	m.GenerateCardsCalls.mu.Unlock()

	if m.GenerateCardsFn != nil {
		return m.GenerateCardsFn(ctx, noteText, opts)
	}

	return m.Cards, m.Err
}

// CallCount returns how many times GenerateCards was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCardsCalls.mu.Lock()
	defer m.GenerateCardsCalls.mu.Unlock()
	return m.GenerateCardsCalls.Count
}

// LastOptions returns the options passed to the most recent call.
func (m *MockGenerator) LastOptions() (parser.Options, bool) {
	m.GenerateCardsCalls.mu.Lock()
	defer m.GenerateCardsCalls.mu.Unlock()
	n := len(m.GenerateCardsCalls.Options)
	if n == 0 {
		return parser.Options{}, false
	}
	return m.GenerateCardsCalls.Options[n-1], true
}

// NewMockGeneratorWithCards creates a MockGenerator that returns the specified cards
func NewMockGeneratorWithCards(cards []domain.Card) *MockGenerator {
	return &MockGenerator{
		Cards: cards,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrGenerationFailed,
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCardsCalls.mu.Lock()
	defer m.GenerateCardsCalls.mu.Unlock()

	m.GenerateCardsCalls.Count = 0
	m.GenerateCardsCalls.NoteTexts = nil
	m.GenerateCardsCalls.Options = nil
}
