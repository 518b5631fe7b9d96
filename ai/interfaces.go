package ai

import "context"

// SenseEnricher turns a batch of seed words into enriched word senses.
// A word with several clearly distinct meanings yields several RawSenses;
// most words yield exactly one. Implementations must be thread-safe.
type SenseEnricher interface {
	// EnrichWords submits one batch of words to the completion service and
	// returns the parsed senses. The result carries no ordering,
	// completeness, or coverage guarantee: senses may come back in any
	// order, words may be missing, and identifiers may be mis-echoed.
	// Returns an error if the call fails or nothing parseable comes back.
	EnrichWords(ctx context.Context, words []string) ([]RawSense, error)
}

// SenseRater estimates how often a learner encounters each given word sense.
// Implementations must be thread-safe.
type SenseRater interface {
	// RateSenses returns a frequency class (common/moderate/rare) per sense.
	// Senses missing from the response simply have no rating.
	RateSenses(ctx context.Context, senses []SenseRef) ([]SenseRating, error)
}

// MergeAdvisor reviews groups of senses that share a base word and advises
// which groups were over-split and should collapse into one entry.
// Implementations must be thread-safe.
type MergeAdvisor interface {
	// AdviseMerges returns one decision per base word. Groups without a
	// decision in the response are kept as-is.
	AdviseMerges(ctx context.Context, groups []SenseGroup) ([]MergeDecision, error)
}

// UsageAnnotator writes short practical usage notes for entries whose
// definitions are too technical to be useful on their own (particles,
// classifiers, markers). Implementations must be thread-safe.
type UsageAnnotator interface {
	// AnnotateUsage returns a note per queried lemma. Lemmas missing from
	// the response get no note.
	AnnotateUsage(ctx context.Context, queries []UsageQuery) ([]UsageNote, error)
}

// CompoundSuggester proposes compound words worth adding to the candidate
// list beyond the curated categories. Implementations must be thread-safe.
type CompoundSuggester interface {
	// SuggestCompounds asks for up to n compounds not already in known.
	// The returned list may contain duplicates or entries from known;
	// callers dedupe.
	SuggestCompounds(ctx context.Context, known []string, n int) ([]string, error)
}

// Provider aggregates the LLM services behind one client for convenient
// initialization and lifecycle management. All services share the provider's
// configuration and underlying connection.
type Provider interface {
	// Enricher returns the sense enrichment service.
	Enricher() SenseEnricher

	// Rater returns the sense frequency rating service.
	Rater() SenseRater

	// Advisor returns the sense merge advice service.
	Advisor() MergeAdvisor

	// Annotator returns the usage note service.
	Annotator() UsageAnnotator

	// Compounds returns the compound suggestion service.
	Compounds() CompoundSuggester

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
