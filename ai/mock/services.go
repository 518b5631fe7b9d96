package mock

import (
	"context"

	"github.com/poiesic/lexikit/ai"
)

// MockSenseRater is a test double for ai.SenseRater.
type MockSenseRater struct {
	// RateSensesFunc is called by RateSenses if set.
	// If nil, every sense is rated common.
	RateSensesFunc func(ctx context.Context, senses []ai.SenseRef) ([]ai.SenseRating, error)

	callCount int
}

// NewMockSenseRater creates a mock rater with default behavior.
func NewMockSenseRater() *MockSenseRater {
	return &MockSenseRater{}
}

// RateSenses rates every sense common unless a custom func is set.
func (m *MockSenseRater) RateSenses(ctx context.Context, senses []ai.SenseRef) ([]ai.SenseRating, error) {
	m.callCount++

	if m.RateSensesFunc != nil {
		return m.RateSensesFunc(ctx, senses)
	}

	ratings := make([]ai.SenseRating, 0, len(senses))
	for _, s := range senses {
		ratings = append(ratings, ai.SenseRating{
			Lemma:     s.Lemma,
			Frequency: ai.FrequencyCommon,
			Reason:    "mock rating",
		})
	}
	return ratings, nil
}

// CallCount returns the number of times RateSenses was called.
func (m *MockSenseRater) CallCount() int { return m.callCount }

// Reset clears the call count and custom functions.
func (m *MockSenseRater) Reset() {
	m.callCount = 0
	m.RateSensesFunc = nil
}

// MockMergeAdvisor is a test double for ai.MergeAdvisor.
type MockMergeAdvisor struct {
	// AdviseMergesFunc is called by AdviseMerges if set.
	// If nil, every group is kept.
	AdviseMergesFunc func(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error)

	callCount int
}

// NewMockMergeAdvisor creates a mock advisor with default behavior.
func NewMockMergeAdvisor() *MockMergeAdvisor {
	return &MockMergeAdvisor{}
}

// AdviseMerges keeps every group unless a custom func is set.
func (m *MockMergeAdvisor) AdviseMerges(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error) {
	m.callCount++

	if m.AdviseMergesFunc != nil {
		return m.AdviseMergesFunc(ctx, groups)
	}

	decisions := make([]ai.MergeDecision, 0, len(groups))
	for _, g := range groups {
		decisions = append(decisions, ai.MergeDecision{
			BaseWord: g.BaseWord,
			Action:   ai.ActionKeep,
			Reason:   "mock decision",
		})
	}
	return decisions, nil
}

// CallCount returns the number of times AdviseMerges was called.
func (m *MockMergeAdvisor) CallCount() int { return m.callCount }

// Reset clears the call count and custom functions.
func (m *MockMergeAdvisor) Reset() {
	m.callCount = 0
	m.AdviseMergesFunc = nil
}

// MockUsageAnnotator is a test double for ai.UsageAnnotator.
type MockUsageAnnotator struct {
	// AnnotateUsageFunc is called by AnnotateUsage if set.
	// If nil, every query gets a stub note.
	AnnotateUsageFunc func(ctx context.Context, queries []ai.UsageQuery) ([]ai.UsageNote, error)

	callCount int
}

// NewMockUsageAnnotator creates a mock annotator with default behavior.
func NewMockUsageAnnotator() *MockUsageAnnotator {
	return &MockUsageAnnotator{}
}

// AnnotateUsage produces a stub note per query unless a custom func is set.
func (m *MockUsageAnnotator) AnnotateUsage(ctx context.Context, queries []ai.UsageQuery) ([]ai.UsageNote, error) {
	m.callCount++

	if m.AnnotateUsageFunc != nil {
		return m.AnnotateUsageFunc(ctx, queries)
	}

	notes := make([]ai.UsageNote, 0, len(queries))
	for _, q := range queries {
		notes = append(notes, ai.UsageNote{
			Lemma: q.Lemma,
			Note:  "usage note for " + q.Lemma,
		})
	}
	return notes, nil
}

// CallCount returns the number of times AnnotateUsage was called.
func (m *MockUsageAnnotator) CallCount() int { return m.callCount }

// Reset clears the call count and custom functions.
func (m *MockUsageAnnotator) Reset() {
	m.callCount = 0
	m.AnnotateUsageFunc = nil
}

// MockCompoundSuggester is a test double for ai.CompoundSuggester.
type MockCompoundSuggester struct {
	// SuggestCompoundsFunc is called by SuggestCompounds if set.
	// If nil, an empty list is returned.
	SuggestCompoundsFunc func(ctx context.Context, known []string, n int) ([]string, error)

	callCount int
}

// NewMockCompoundSuggester creates a mock suggester with default behavior.
func NewMockCompoundSuggester() *MockCompoundSuggester {
	return &MockCompoundSuggester{}
}

// SuggestCompounds returns nothing unless a custom func is set.
func (m *MockCompoundSuggester) SuggestCompounds(ctx context.Context, known []string, n int) ([]string, error) {
	m.callCount++

	if m.SuggestCompoundsFunc != nil {
		return m.SuggestCompoundsFunc(ctx, known, n)
	}
	return []string{}, nil
}

// CallCount returns the number of times SuggestCompounds was called.
func (m *MockCompoundSuggester) CallCount() int { return m.callCount }

// Reset clears the call count and custom functions.
func (m *MockCompoundSuggester) Reset() {
	m.callCount = 0
	m.SuggestCompoundsFunc = nil
}
