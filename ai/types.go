package ai

// RawSense is one word sense as parsed out of a completion response,
// before seed metadata is merged in. Field contents mirror the JSON
// contract in the enrichment prompt.
type RawSense struct {
	// OriginalWord is the seed word this sense belongs to. The service
	// does not always echo it back; callers fall back to the lemma's
	// base form.
	OriginalWord string

	// Lemma is the sense-subscripted form ("để₂") or the bare word
	// for single-sense entries.
	Lemma string

	// SenseNumber is the 1-based index within the word's sense group.
	SenseNumber int

	// TotalSenses is the size of the sense group as reported by the service.
	TotalSenses int

	// POS is the part-of-speech tag ("noun", "verb", "particle", ...).
	POS string

	// Definition is a short English gloss, 3-5 words.
	Definition string

	// ExampleVI is a natural Vietnamese example sentence.
	ExampleVI string

	// ExampleEN is the English translation of the example.
	ExampleEN string
}

// SenseRef identifies one existing sense for rating or annotation.
type SenseRef struct {
	Lemma      string
	POS        string
	Definition string
}

// SenseFrequency classifies how often a learner encounters a sense.
type SenseFrequency string

const (
	// FrequencyCommon marks senses representing >30% of a word's usage.
	FrequencyCommon SenseFrequency = "common"
	// FrequencyModerate marks senses at 10-30% of usage.
	FrequencyModerate SenseFrequency = "moderate"
	// FrequencyRare marks senses under 10% of usage.
	FrequencyRare SenseFrequency = "rare"
)

// SenseRating is the service's frequency assessment of one sense.
type SenseRating struct {
	Lemma     string
	Frequency SenseFrequency
	Reason    string
}

// SenseGroup collects the senses sharing one base word, for merge review.
type SenseGroup struct {
	BaseWord string
	Senses   []SenseRef
}

// MergeAction is the advised handling of a sense group.
type MergeAction string

const (
	// ActionKeep keeps the group's senses as separate entries.
	ActionKeep MergeAction = "keep"
	// ActionMerge collapses the group into a single entry.
	ActionMerge MergeAction = "merge"
)

// MergeDecision is the service's advice for one sense group.
type MergeDecision struct {
	BaseWord         string
	Action           MergeAction
	MergedDefinition string // set when Action is merge
	MergedPOS        string // set when Action is merge
	Reason           string
}

// UsageQuery identifies one entry needing a practical usage note.
type UsageQuery struct {
	Lemma      string
	POS        string
	Definition string
}

// UsageNote is the service's note for one lemma.
type UsageNote struct {
	Lemma string
	Note  string
}
