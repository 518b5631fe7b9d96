package mock

import (
	"context"

	"github.com/poiesic/lexikit/ai"
)

// MockSenseEnricher is a test double for ai.SenseEnricher.
// It allows custom behavior injection via function fields.
type MockSenseEnricher struct {
	// EnrichWordsFunc is called by EnrichWords if set.
	// If nil, every word yields one single-sense entry with stub fields.
	EnrichWordsFunc func(ctx context.Context, words []string) ([]ai.RawSense, error)

	callCount int
}

// NewMockSenseEnricher creates a mock enricher with default behavior.
// Returns the concrete type to allow test assertions.
func NewMockSenseEnricher() *MockSenseEnricher {
	return &MockSenseEnricher{}
}

// EnrichWords returns one canned sense per word unless a custom func is set.
func (m *MockSenseEnricher) EnrichWords(ctx context.Context, words []string) ([]ai.RawSense, error) {
	m.callCount++

	if m.EnrichWordsFunc != nil {
		return m.EnrichWordsFunc(ctx, words)
	}

	senses := make([]ai.RawSense, 0, len(words))
	for _, w := range words {
		senses = append(senses, ai.RawSense{
			OriginalWord: w,
			Lemma:        w,
			SenseNumber:  1,
			TotalSenses:  1,
			POS:          "noun",
			Definition:   "definition of " + w,
			ExampleVI:    w + " example",
			ExampleEN:    "example for " + w,
		})
	}
	return senses, nil
}

// CallCount returns the number of times EnrichWords was called.
func (m *MockSenseEnricher) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSenseEnricher) Reset() {
	m.callCount = 0
	m.EnrichWordsFunc = nil
}
