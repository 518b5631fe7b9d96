package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/ai/mock"
	"github.com/poiesic/lexikit/core"
)

func seedBatch(words ...string) []core.SeedWord {
	seeds := make([]core.SeedWord, len(words))
	for i, w := range words {
		seeds[i] = core.SeedWord{Word: w, Rank: i + 1, FrequencyScore: 6.0 - float64(i)*0.1}
	}
	return seeds
}

func TestBatchProcessor_SingleSensePerWord(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà", "thì"))

	require.Len(t, entries, 2)
	assert.Equal(t, "nhà", entries[0].Lemma)
	assert.Equal(t, "thì", entries[1].Lemma)
	assert.Equal(t, 1, enricher.CallCount())
	for _, e := range entries {
		assert.False(t, e.NeedsReview)
	}
}

func TestBatchProcessor_SeedMetadataMergedIn(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	seeds := []core.SeedWord{
		{Word: "nhà cửa", Rank: 1, FrequencyScore: 5.2, IsCompound: true},
	}
	entries := bp.Process(context.Background(), seeds)

	require.Len(t, entries, 1)
	assert.Equal(t, "nhà cửa", entries[0].OriginalWord)
	assert.InDelta(t, 5.2, entries[0].FrequencyScore, 0.001)
	assert.True(t, entries[0].IsCompound)
}

func TestBatchProcessor_MultiSenseKeepsSeedOrder(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		// Senses returned out of seed order, with "để" expanding to two.
		return []ai.RawSense{
			{OriginalWord: "thì", Lemma: "thì", SenseNumber: 1, TotalSenses: 1, POS: "particle", Definition: "then; topic marker"},
			{OriginalWord: "để", Lemma: "để₂", SenseNumber: 2, TotalSenses: 2, POS: "verb", Definition: "to put, to place"},
			{OriginalWord: "để", Lemma: "để₁", SenseNumber: 1, TotalSenses: 2, POS: "conjunction", Definition: "in order to"},
		}, nil
	}
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("để", "thì"))

	require.Len(t, entries, 3)
	// All of để's senses come before thì, matching batch order.
	assert.Equal(t, "để", entries[0].OriginalWord)
	assert.Equal(t, "để", entries[1].OriginalWord)
	assert.Equal(t, "thì", entries[2].OriginalWord)
}

func TestBatchProcessor_UnmatchedSensesTrail(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return []ai.RawSense{
			{OriginalWord: "bánh mì", Lemma: "bánh mì", SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "bread"},
			{OriginalWord: "nhà", Lemma: "nhà", SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "house"},
		}, nil
	}
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà"))

	require.Len(t, entries, 2)
	assert.Equal(t, "nhà", entries[0].Lemma)
	assert.Equal(t, "bánh mì", entries[1].Lemma, "hallucinated word trails the batch")
	assert.Zero(t, entries[1].FrequencyScore, "no seed metadata for unmatched senses")
}

func TestBatchProcessor_PartialCoverageDropsMissingWord(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return []ai.RawSense{
			{OriginalWord: "nhà", Lemma: "nhà", SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "house"},
		}, nil
	}
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà", "thì"))

	require.Len(t, entries, 1)
	assert.Equal(t, "nhà", entries[0].Lemma)
}

func TestBatchProcessor_AllRetriesFailYieldsPlaceholders(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return nil, errors.New("service unavailable")
	}
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	seeds := seedBatch("nhà", "thì", "của")
	entries := bp.Process(context.Background(), seeds)

	assert.Equal(t, 3, enricher.CallCount(), "should exhaust all attempts")
	require.Len(t, entries, 3, "one placeholder per seed word")
	for i, e := range entries {
		assert.Equal(t, seeds[i].Word, e.Lemma)
		assert.Equal(t, PlaceholderPOS, e.POS)
		assert.Equal(t, PlaceholderDefinition, e.Definition)
		assert.Empty(t, e.ExampleVI)
		assert.Empty(t, e.ExampleEN)
		assert.True(t, e.NeedsReview)
		assert.InDelta(t, seeds[i].FrequencyScore, e.FrequencyScore, 0.001)
	}
}

func TestBatchProcessor_EmptyResponseRetriedThenPlaceholders(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return []ai.RawSense{}, nil
	}
	bp := NewBatchProcessor(enricher, 2, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà"))

	assert.Equal(t, 2, enricher.CallCount(), "empty result counts as a failed attempt")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].NeedsReview)
}

func TestBatchProcessor_RecoveryOnRetry(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	calls := 0
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("429 too many requests")
		}
		return []ai.RawSense{
			{OriginalWord: "nhà", Lemma: "nhà", SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "house"},
		}, nil
	}
	bp := NewBatchProcessor(enricher, 3, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà"))

	require.Len(t, entries, 1)
	assert.False(t, entries[0].NeedsReview)
	assert.Equal(t, 2, calls)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	bp := NewBatchProcessor(mock.NewMockSenseEnricher(), 3, time.Millisecond)
	assert.Nil(t, bp.Process(context.Background(), nil))
}

func TestBatchProcessor_DefaultsZeroSenseFields(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return []ai.RawSense{
			{OriginalWord: "nhà", Lemma: "nhà", POS: "noun", Definition: "house"},
		}, nil
	}
	bp := NewBatchProcessor(enricher, 1, time.Millisecond)

	entries := bp.Process(context.Background(), seedBatch("nhà"))

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].SenseNumber)
	assert.Equal(t, 1, entries[0].TotalSenses)
}
