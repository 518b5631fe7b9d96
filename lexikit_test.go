package lexikit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lexikit "github.com/poiesic/lexikit"
	"github.com/poiesic/lexikit/ai/mock"
	"github.com/poiesic/lexikit/audio"
	audiomock "github.com/poiesic/lexikit/audio/mock"
	"github.com/poiesic/lexikit/enrich"
	"github.com/poiesic/lexikit/wordlist"
)

func enrichTestConfig() *enrich.Config {
	return &enrich.Config{
		TargetEntries:  5,
		BatchSize:      2,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		ReportInterval: 100,
	}
}

func testBuilder(t *testing.T, opts ...lexikit.BuilderOption) (*lexikit.Builder, *mock.MockProvider) {
	t.Helper()
	provider := mock.NewMockProvider().(*mock.MockProvider)
	opts = append([]lexikit.BuilderOption{lexikit.WithProvider(provider)}, opts...)
	builder, err := lexikit.NewBuilder(context.Background(), filepath.Join(t.TempDir(), "cache"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { builder.Close() })
	return builder, provider
}

func testScorer(t *testing.T) wordlist.FrequencyScorer {
	t.Helper()
	table, err := wordlist.LoadZipfTable(strings.NewReader("của\t7.1\nvà\t7.0\nnhà\t6.2\n"))
	require.NoError(t, err)
	return table
}

func TestBuilderGenerateWordList(t *testing.T) {
	builder, _ := testBuilder(t)

	seeds, err := builder.GenerateWordList(context.Background(), testScorer(t))
	require.NoError(t, err)

	// curated compounds the table cannot score are dropped
	require.Len(t, seeds, 3)
	assert.Equal(t, 1, seeds[0].Rank)
	assert.Equal(t, "của", seeds[0].Word)
}

func TestBuilderEnrichUsesCacheAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	provider := mock.NewMockProvider().(*mock.MockProvider)
	cfg := enrichTestConfig()

	first, err := lexikit.NewBuilder(context.Background(), filepath.Join(dir, "cache"),
		lexikit.WithProvider(provider), lexikit.WithEnrichConfig(cfg))
	require.NoError(t, err)

	scorer := testScorer(t)
	seeds, err := first.GenerateWordList(context.Background(), scorer)
	require.NoError(t, err)
	seeds = seeds[:3]

	entries, err := first.Enrich(context.Background(), seeds)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	require.NoError(t, first.Close())

	firstCalls := provider.GetMockEnricher().CallCount()
	require.Positive(t, firstCalls)

	second, err := lexikit.NewBuilder(context.Background(), filepath.Join(dir, "cache"),
		lexikit.WithProvider(mock.NewMockProvider()), lexikit.WithEnrichConfig(cfg))
	require.NoError(t, err)
	defer second.Close()

	again, err := second.Enrich(context.Background(), seeds)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestBuilderCleanupStages(t *testing.T) {
	builder, _ := testBuilder(t, lexikit.WithEnrichConfig(enrichTestConfig()))

	seeds, err := builder.GenerateWordList(context.Background(), testScorer(t))
	require.NoError(t, err)
	entries, err := builder.Enrich(context.Background(), seeds[:3])
	require.NoError(t, err)

	// default rater marks everything common, so nothing is removed
	entries, removed, err := builder.FilterRareSenses(context.Background(), entries)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// no two-sense groups, so nothing merges
	entries, merged, err := builder.MergeSenses(context.Background(), entries)
	require.NoError(t, err)
	assert.Zero(t, merged)

	// stub definitions are not technical jargon, so no notes are requested
	noted, err := builder.AnnotateUsage(context.Background(), entries)
	require.NoError(t, err)
	assert.Zero(t, noted)

	entries, report := builder.Verify(entries, testScorer(t))
	assert.Len(t, entries, 3)
	assert.Empty(t, report.Removed)
}

func TestBuilderSynthesizeAudioAndPackage(t *testing.T) {
	audioDir := t.TempDir()
	synth := audiomock.NewMockSynthesizer()
	audioCfg := audio.DefaultGeneratorConfig(audioDir)
	audioCfg.RetryDelay = time.Millisecond
	audioCfg.RateDelay = 0

	builder, _ := testBuilder(t,
		lexikit.WithEnrichConfig(enrichTestConfig()),
		lexikit.WithSynthesizer(synth),
		lexikit.WithAudioConfig(audioCfg),
		lexikit.WithDeckName("Test Deck"))

	seeds, err := builder.GenerateWordList(context.Background(), testScorer(t))
	require.NoError(t, err)
	entries, err := builder.Enrich(context.Background(), seeds[:2])
	require.NoError(t, err)

	stats, err := builder.SynthesizeAudio(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Generated)
	assert.NotEmpty(t, entries[0].AudioRef)

	archivePath := filepath.Join(t.TempDir(), "deck.zip")
	report, err := builder.Package(archivePath, entries)
	require.NoError(t, err)
	assert.Equal(t, "Test Deck", report.Manifest.Name)
	assert.Equal(t, 2, report.Manifest.EntryCount)
	assert.Equal(t, 2, report.Manifest.MediaCount)
	assert.Empty(t, report.MissingMedia)

	_, err = os.Stat(archivePath)
	assert.NoError(t, err)
}

func TestBuilderSynthesizeAudioWithoutSynthesizer(t *testing.T) {
	builder, _ := testBuilder(t)
	_, err := builder.SynthesizeAudio(context.Background(), nil)
	assert.ErrorIs(t, err, audio.ErrNoSynthesizer)
}

func TestBuilderCloseClosesProvider(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	builder, err := lexikit.NewBuilder(context.Background(), filepath.Join(t.TempDir(), "cache"),
		lexikit.WithProvider(provider))
	require.NoError(t, err)

	require.NoError(t, builder.Close())
	assert.True(t, provider.Closed())
}
