// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexikit

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/ai/gemini"
	"github.com/poiesic/lexikit/audio"
	"github.com/poiesic/lexikit/cache"
	"github.com/poiesic/lexikit/cleanup"
	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/enrich"
	"github.com/poiesic/lexikit/export"
	"github.com/poiesic/lexikit/wordlist"
)

// Builder wires the deck-building stages together: word list generation,
// enrichment, cleanup passes, audio synthesis, and packaging.
type Builder struct {
	cache    *cache.Cache
	provider ai.Provider
	synth    audio.Synthesizer
	options  *builderOptions
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	aiConfig       *ai.Config
	provider       ai.Provider
	synth          audio.Synthesizer
	enrichConfig   *enrich.Config
	wordlistConfig *wordlist.GeneratorConfig
	audioConfig    *audio.GeneratorConfig
	deckName       string
	mediaDir       string
	progress       io.Writer
}

// WithAIConfig sets the completion service configuration used when the
// builder constructs its own provider.
func WithAIConfig(config *ai.Config) BuilderOption {
	return func(o *builderOptions) { o.aiConfig = config }
}

// WithProvider supplies a ready-made provider instead of constructing one
// from the AI configuration. The builder takes ownership and closes it.
func WithProvider(provider ai.Provider) BuilderOption {
	return func(o *builderOptions) { o.provider = provider }
}

// WithSynthesizer supplies the speech synthesizer used by SynthesizeAudio.
func WithSynthesizer(synth audio.Synthesizer) BuilderOption {
	return func(o *builderOptions) { o.synth = synth }
}

// WithEnrichConfig overrides the enrichment parameters.
func WithEnrichConfig(config *enrich.Config) BuilderOption {
	return func(o *builderOptions) { o.enrichConfig = config }
}

// WithWordlistConfig overrides the word list generation parameters.
func WithWordlistConfig(config *wordlist.GeneratorConfig) BuilderOption {
	return func(o *builderOptions) { o.wordlistConfig = config }
}

// WithAudioConfig overrides the audio generation parameters.
func WithAudioConfig(config *audio.GeneratorConfig) BuilderOption {
	return func(o *builderOptions) { o.audioConfig = config }
}

// WithDeckName sets the deck name recorded in the package manifest.
func WithDeckName(name string) BuilderOption {
	return func(o *builderOptions) { o.deckName = name }
}

// WithProgress sets the writer enrichment progress reports go to.
func WithProgress(w io.Writer) BuilderOption {
	return func(o *builderOptions) { o.progress = w }
}

// NewBuilder opens the enrichment cache at cachePath and constructs the
// stage components. With no provider option set, a Gemini provider is
// created from the AI configuration.
func NewBuilder(ctx context.Context, cachePath string, opts ...BuilderOption) (*Builder, error) {
	options := &builderOptions{
		aiConfig:       ai.DefaultConfig(),
		enrichConfig:   enrich.DefaultConfig(),
		wordlistConfig: wordlist.DefaultGeneratorConfig(),
		audioConfig:    audio.DefaultGeneratorConfig("audio"),
		deckName:       "Vietnamese Vocabulary",
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.mediaDir == "" {
		options.mediaDir = options.audioConfig.Dir
	}

	entryCache, err := cache.Open(cachePath)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = gemini.NewProvider(ctx, options.aiConfig)
		if err != nil {
			entryCache.Close()
			return nil, err
		}
	}

	return &Builder{
		cache:    entryCache,
		provider: provider,
		synth:    options.synth,
		options:  options,
		logger:   slog.Default(),
	}, nil
}

// Close releases the provider and the cache.
func (b *Builder) Close() error {
	if err := b.provider.Close(); err != nil {
		b.logger.Error("error closing AI provider", "err", err)
	}
	if err := b.cache.Close(); err != nil {
		b.logger.Error("error closing enrichment cache", "err", err)
		return err
	}
	return nil
}

// GenerateWordList builds the ranked candidate list from a frequency
// scorer, curated compounds, and suggested compounds.
func (b *Builder) GenerateWordList(ctx context.Context, scorer wordlist.FrequencyScorer) ([]core.SeedWord, error) {
	generator := wordlist.NewGenerator(scorer, b.provider.Compounds(), b.options.wordlistConfig)
	return generator.Generate(ctx)
}

// Enrich runs the cached enrichment pipeline over the seed list.
func (b *Builder) Enrich(ctx context.Context, seeds []core.SeedWord) ([]core.CardEntry, error) {
	pipeline := enrich.NewPipeline(b.provider.Enricher(), b.cache, b.options.enrichConfig, b.options.progress)
	return pipeline.Run(ctx, seeds)
}

// FilterRareSenses removes rarely-encountered senses of polysemous words,
// returning the kept entries and the number removed.
func (b *Builder) FilterRareSenses(ctx context.Context, entries []core.CardEntry) ([]core.CardEntry, int, error) {
	cfg := b.options.enrichConfig
	filter := cleanup.NewRareSenseFilter(b.provider.Rater(), 0, cfg.MaxRetries, cfg.RetryDelay)
	return filter.Filter(ctx, entries)
}

// MergeSenses collapses over-split sense pairs into single entries,
// returning the surviving entries and the number of merges applied.
func (b *Builder) MergeSenses(ctx context.Context, entries []core.CardEntry) ([]core.CardEntry, int, error) {
	cfg := b.options.enrichConfig
	merger := cleanup.NewSenseMerger(b.provider.Advisor(), 0, cfg.MaxRetries, cfg.RetryDelay)
	return merger.Merge(ctx, entries)
}

// AnnotateUsage adds practical usage notes to entries whose definitions
// are too technical, returning the number of notes written.
func (b *Builder) AnnotateUsage(ctx context.Context, entries []core.CardEntry) (int, error) {
	cfg := b.options.enrichConfig
	annotator := cleanup.NewUsageNoteAnnotator(b.provider.Annotator(), 0, cfg.MaxRetries, cfg.RetryDelay)
	return annotator.Annotate(ctx, entries)
}

// VerifyReport summarizes the mechanical cleanup and verification pass.
type VerifyReport struct {
	Polish          cleanup.PolishStats
	Removed         []string
	Mismatches      []cleanup.FrequencyMismatch
	ExamplesFlagged int
}

// Verify runs the non-LLM cleanup passes: POS normalization and dedupe,
// the explicit removal list, frequency ordering checks, and example
// sentence checks. Suspect examples are flagged for review, never
// rewritten.
func (b *Builder) Verify(entries []core.CardEntry, scorer wordlist.FrequencyScorer) ([]core.CardEntry, VerifyReport) {
	var report VerifyReport
	entries, report.Polish = cleanup.Polish(entries)
	entries, report.Removed = cleanup.RemoveEntries(entries, cleanup.DefaultRemovals)
	if scorer != nil {
		report.Mismatches = cleanup.VerifyFrequencies(entries, scorer, 0.5)
	}
	report.ExamplesFlagged = cleanup.CheckExamples(entries)
	return entries, report
}

// SynthesizeAudio generates one audio file per entry and sets the sound
// references. Requires a synthesizer configured via WithSynthesizer.
func (b *Builder) SynthesizeAudio(ctx context.Context, entries []core.CardEntry) (audio.Stats, error) {
	if b.synth == nil {
		return audio.Stats{}, audio.ErrNoSynthesizer
	}
	generator := audio.NewGenerator(b.synth, b.options.audioConfig)
	return generator.Generate(ctx, entries)
}

// Package writes the finished deck, its media, and a manifest to a zip
// archive at path.
func (b *Builder) Package(path string, entries []core.CardEntry) (export.Report, error) {
	packager := export.NewPackager(b.options.deckName, b.options.mediaDir)
	return packager.WriteFile(path, entries)
}

// Cache exposes the enrichment cache, mainly for inspection commands.
func (b *Builder) Cache() *cache.Cache {
	return b.cache
}
