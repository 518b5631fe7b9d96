package mock

import "github.com/poiesic/lexikit/ai"

// MockProvider aggregates the mock services behind the ai.Provider interface.
type MockProvider struct {
	enricher  *MockSenseEnricher
	rater     *MockSenseRater
	advisor   *MockMergeAdvisor
	annotator *MockUsageAnnotator
	compounds *MockCompoundSuggester

	closed bool
}

// NewMockProvider creates a provider whose services all use default mock
// behavior. Use the GetMock* accessors to inject behavior or assert calls.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		enricher:  NewMockSenseEnricher(),
		rater:     NewMockSenseRater(),
		advisor:   NewMockMergeAdvisor(),
		annotator: NewMockUsageAnnotator(),
		compounds: NewMockCompoundSuggester(),
	}
}

// Enricher returns the sense enrichment service.
func (p *MockProvider) Enricher() ai.SenseEnricher { return p.enricher }

// Rater returns the sense frequency rating service.
func (p *MockProvider) Rater() ai.SenseRater { return p.rater }

// Advisor returns the sense merge advice service.
func (p *MockProvider) Advisor() ai.MergeAdvisor { return p.advisor }

// Annotator returns the usage note service.
func (p *MockProvider) Annotator() ai.UsageAnnotator { return p.annotator }

// Compounds returns the compound suggestion service.
func (p *MockProvider) Compounds() ai.CompoundSuggester { return p.compounds }

// Close records that the provider was closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool { return p.closed }

// GetMockEnricher returns the concrete enricher for assertions.
func (p *MockProvider) GetMockEnricher() *MockSenseEnricher { return p.enricher }

// GetMockRater returns the concrete rater for assertions.
func (p *MockProvider) GetMockRater() *MockSenseRater { return p.rater }

// GetMockAdvisor returns the concrete advisor for assertions.
func (p *MockProvider) GetMockAdvisor() *MockMergeAdvisor { return p.advisor }

// GetMockAnnotator returns the concrete annotator for assertions.
func (p *MockProvider) GetMockAnnotator() *MockUsageAnnotator { return p.annotator }

// GetMockCompounds returns the concrete suggester for assertions.
func (p *MockProvider) GetMockCompounds() *MockCompoundSuggester { return p.compounds }
