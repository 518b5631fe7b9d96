package enrich

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/ai/mock"
	"github.com/poiesic/lexikit/core"
)

func testConfig(target, batchSize int) *Config {
	return &Config{
		TargetEntries:  target,
		BatchSize:      batchSize,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
		ReportInterval: 100,
	}
}

// memoryCache is a map-backed EntryCache for pipeline tests.
type memoryCache struct {
	entries map[string][]core.CardEntry
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]core.CardEntry)}
}

func (c *memoryCache) Get(word string) ([]core.CardEntry, bool, error) {
	entries, ok := c.entries[word]
	return entries, ok, nil
}

func (c *memoryCache) Put(word string, entries []core.CardEntry) error {
	c.entries[word] = entries
	c.puts++
	return nil
}

func TestPipeline_TwoWordsTwoEntries(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	pipeline := NewPipeline(enricher, nil, testConfig(2, 2), io.Discard)

	seeds := []core.SeedWord{
		{Word: "nhà", Rank: 1, FrequencyScore: 6.0},
		{Word: "thì", Rank: 2, FrequencyScore: 5.8},
	}

	entries, err := pipeline.Run(context.Background(), seeds)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "nhà", entries[0].Lemma)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "thì", entries[1].Lemma)
	for _, e := range entries {
		assert.False(t, e.NeedsReview)
		assert.NotEmpty(t, e.Definition)
	}
	assert.Equal(t, 1, enricher.CallCount(), "both words fit one batch")
}

func TestPipeline_TotalFailureFillsTargetWithPlaceholders(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return nil, errors.New("service down")
	}
	pipeline := NewPipeline(enricher, nil, testConfig(3, 2), io.Discard)

	seeds := []core.SeedWord{
		{Word: "và", Rank: 1}, {Word: "của", Rank: 2}, {Word: "là", Rank: 3},
		{Word: "có", Rank: 4}, {Word: "được", Rank: 5},
	}

	entries, err := pipeline.Run(context.Background(), seeds)
	require.NoError(t, err, "enrichment failures never fail the run")
	require.Len(t, entries, 3, "stops at target even when every batch fails")

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		assert.True(t, e.NeedsReview)
		assert.Equal(t, PlaceholderDefinition, e.Definition)
	}
	// Two batches of 2 suffice to reach 3 entries; the fifth word is never sent.
	assert.Equal(t, 6, enricher.CallCount(), "2 batches x 3 attempts each")
}

func TestPipeline_StopsMidBatchAtTarget(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		var senses []ai.RawSense
		for _, w := range words {
			for n := 1; n <= 3; n++ {
				senses = append(senses, ai.RawSense{
					OriginalWord: w,
					Lemma:        core.SenseLemma(w, n, 3),
					SenseNumber:  n,
					TotalSenses:  3,
					POS:          "verb",
					Definition:   "sense of " + w,
				})
			}
		}
		return senses, nil
	}
	pipeline := NewPipeline(enricher, nil, testConfig(4, 2), io.Discard)

	seeds := []core.SeedWord{
		{Word: "ăn", Rank: 1}, {Word: "đi", Rank: 2}, {Word: "làm", Rank: 3},
	}

	entries, err := pipeline.Run(context.Background(), seeds)
	require.NoError(t, err)
	require.Len(t, entries, 4, "first batch yields 6 senses but accumulation stops at 4")

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "ranks are contiguous from 1")
	}
	assert.Equal(t, "ăn", entries[0].OriginalWord)
	assert.Equal(t, "đi", entries[3].OriginalWord)
	assert.Equal(t, 1, enricher.CallCount(), "third word is never requested")
}

func TestPipeline_ShortSeedListEndsBelowTarget(t *testing.T) {
	enricher := mock.NewMockSenseEnricher()
	pipeline := NewPipeline(enricher, nil, testConfig(100, 10), io.Discard)

	seeds := []core.SeedWord{{Word: "nhà", Rank: 1}, {Word: "xe", Rank: 2}}

	entries, err := pipeline.Run(context.Background(), seeds)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "run ends when seeds run out")
}

func TestPipeline_EmptySeeds(t *testing.T) {
	pipeline := NewPipeline(mock.NewMockSenseEnricher(), nil, testConfig(10, 5), io.Discard)

	_, err := pipeline.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSeedWords)
}

func TestPipeline_InvalidConfig(t *testing.T) {
	pipeline := NewPipeline(mock.NewMockSenseEnricher(), nil, testConfig(0, 5), io.Discard)

	_, err := pipeline.Run(context.Background(), []core.SeedWord{{Word: "nhà"}})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestPipeline_CanceledBeforeFirstBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := NewPipeline(mock.NewMockSenseEnricher(), nil, testConfig(10, 5), io.Discard)

	_, err := pipeline.Run(ctx, []core.SeedWord{{Word: "nhà"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_CacheSkipsEnricherOnSecondRun(t *testing.T) {
	cache := newMemoryCache()
	seeds := []core.SeedWord{
		{Word: "nhà", Rank: 1, FrequencyScore: 6.0},
		{Word: "thì", Rank: 2, FrequencyScore: 5.8},
	}

	first := mock.NewMockSenseEnricher()
	_, err := NewPipeline(first, cache, testConfig(2, 2), io.Discard).Run(context.Background(), seeds)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CallCount())
	assert.Equal(t, 2, cache.puts)

	second := mock.NewMockSenseEnricher()
	entries, err := NewPipeline(second, cache, testConfig(2, 2), io.Discard).Run(context.Background(), seeds)
	require.NoError(t, err)
	assert.Equal(t, 0, second.CallCount(), "all words served from cache")
	require.Len(t, entries, 2)
	assert.Equal(t, "nhà", entries[0].Lemma)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestPipeline_PlaceholdersNotCached(t *testing.T) {
	cache := newMemoryCache()
	enricher := mock.NewMockSenseEnricher()
	enricher.EnrichWordsFunc = func(ctx context.Context, words []string) ([]ai.RawSense, error) {
		return nil, errors.New("service down")
	}

	seeds := []core.SeedWord{{Word: "nhà", Rank: 1}}
	entries, err := NewPipeline(enricher, cache, testConfig(1, 1), io.Discard).Run(context.Background(), seeds)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].NeedsReview)
	assert.Equal(t, 0, cache.puts, "failed words stay uncached so a rerun retries them")
}

func TestPipeline_CachedAndFreshInterleaveInSeedOrder(t *testing.T) {
	cache := newMemoryCache()
	cache.entries["thì"] = []core.CardEntry{
		{Lemma: "thì", OriginalWord: "thì", SenseNumber: 1, TotalSenses: 1, POS: "particle", Definition: "then"},
	}

	enricher := mock.NewMockSenseEnricher()
	seeds := []core.SeedWord{
		{Word: "nhà", Rank: 1},
		{Word: "thì", Rank: 2},
		{Word: "xe", Rank: 3},
	}

	entries, err := NewPipeline(enricher, cache, testConfig(3, 3), io.Discard).Run(context.Background(), seeds)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"nhà", "thì", "xe"},
		[]string{entries[0].Lemma, entries[1].Lemma, entries[2].Lemma})
}

func TestSummarize(t *testing.T) {
	entries := []core.CardEntry{
		{Lemma: "để₁", OriginalWord: "để", SenseNumber: 1, TotalSenses: 2},
		{Lemma: "để₂", OriginalWord: "để", SenseNumber: 2, TotalSenses: 2},
		{Lemma: "nhà", OriginalWord: "nhà", SenseNumber: 1, TotalSenses: 1, NeedsReview: true},
	}

	stats := Summarize(entries)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 2, stats.UniqueWords)
	assert.Equal(t, 1, stats.NeedsReview)
	assert.InDelta(t, 1.5, stats.ExpansionRatio(), 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.Entries)
	assert.Zero(t, stats.ExpansionRatio())
}
