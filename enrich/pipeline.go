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

package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/core"
)

// EntryCache stores enrichment results keyed by seed word, so an
// interrupted run can resume without re-querying words it already paid
// for. Implementations must treat a missing word as (nil, false, nil).
type EntryCache interface {
	Get(word string) ([]core.CardEntry, bool, error)
	Put(word string, entries []core.CardEntry) error
}

// Pipeline orchestrates bulk enrichment of a seed word list.
type Pipeline struct {
	enricher  ai.SenseEnricher
	cache     EntryCache
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	logger    *slog.Logger
}

// NewPipeline creates a new enrichment pipeline.
// cache may be nil, in which case every batch goes to the enricher.
// progress: where to write progress output (typically os.Stderr)
func NewPipeline(enricher ai.SenseEnricher, cache EntryCache, config *Config, progress io.Writer) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Pipeline{
		enricher:  enricher,
		cache:     cache,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(enricher, config.MaxRetries, config.RetryDelay),
		logger:    slog.Default().With("component", "enrich"),
	}
}

// Run consumes seed words in order, batch by batch, until the configured
// entry target is reached or the seed list is exhausted. The result is
// trimmed to the target and re-ranked 1..N.
//
// Cancellation is honored between batches; the partial accumulation is
// discarded and ctx.Err() returned. Run never fails because of enrichment
// errors, only because of bad configuration, empty input, or cancellation.
func (p *Pipeline) Run(ctx context.Context, seeds []core.SeedWord) ([]core.CardEntry, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeedWords
	}

	target := p.config.TargetEntries
	batchSize := p.config.BatchSize

	fmt.Fprintf(p.progress, "Enriching %d seed words (target: %d entries, batch size: %d)\n",
		len(seeds), target, batchSize)

	tracker := NewProgressTracker(p.progress, target, p.config.ReportInterval)
	tracker.Start()

	accumulated := make([]core.CardEntry, 0, target)
	consumed := 0

	for start := 0; start < len(seeds) && len(accumulated) < target; start += batchSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := start + batchSize
		if end > len(seeds) {
			end = len(seeds)
		}
		batch := seeds[start:end]

		entries := p.batchEntries(ctx, batch)
		consumed += len(batch)

		for _, entry := range entries {
			accumulated = append(accumulated, entry)
			if len(accumulated) >= target {
				// Stop mid-batch: remaining senses from this batch are
				// dropped so the run does not overshoot the target.
				break
			}
		}

		tracker.Update(len(accumulated))
	}

	tracker.Finish()

	if len(accumulated) > target {
		accumulated = accumulated[:target]
	}
	for i := range accumulated {
		accumulated[i].Rank = i + 1
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(p.progress, "Enrichment complete. %d entries from %d seed words in %v\n",
		len(accumulated), consumed, elapsed.Round(time.Second))

	return accumulated, nil
}

// batchEntries resolves one batch, consulting the cache first when one is
// configured. Only fully enriched entries are written back to the cache;
// placeholders are not cached so a later run retries those words.
func (p *Pipeline) batchEntries(ctx context.Context, batch []core.SeedWord) []core.CardEntry {
	if p.cache == nil {
		return p.processor.Process(ctx, batch)
	}

	cached := make(map[string][]core.CardEntry)
	misses := make([]core.SeedWord, 0, len(batch))

	for _, seed := range batch {
		entries, ok, err := p.cache.Get(seed.Word)
		if err != nil {
			p.logger.Warn("cache read failed", "word", seed.Word, "error", err)
			misses = append(misses, seed)
			continue
		}
		if ok {
			cached[seed.Word] = entries
		} else {
			misses = append(misses, seed)
		}
	}

	freshBySeed := make(map[string][]core.CardEntry)
	var unmatched []core.CardEntry
	if len(misses) > 0 {
		missSet := make(map[string]bool, len(misses))
		for _, seed := range misses {
			missSet[seed.Word] = true
		}

		for _, entry := range p.processor.Process(ctx, misses) {
			source := entry.SourceWord()
			if !missSet[source] {
				unmatched = append(unmatched, entry)
				continue
			}
			freshBySeed[source] = append(freshBySeed[source], entry)
		}

		for word, entries := range freshBySeed {
			if reviewOnly(entries) {
				continue
			}
			if err := p.cache.Put(word, entries); err != nil {
				p.logger.Warn("cache write failed", "word", word, "error", err)
			}
		}
	}

	result := make([]core.CardEntry, 0, len(batch))
	for _, seed := range batch {
		if entries, ok := cached[seed.Word]; ok {
			result = append(result, entries...)
			continue
		}
		result = append(result, freshBySeed[seed.Word]...)
	}
	result = append(result, unmatched...)

	return result
}

// reviewOnly reports whether every entry in the group is a placeholder.
func reviewOnly(entries []core.CardEntry) bool {
	for _, entry := range entries {
		if !entry.NeedsReview {
			return false
		}
	}
	return true
}

// Stats summarizes the outcome of an enrichment run.
type Stats struct {
	Entries     int
	UniqueWords int
	NeedsReview int
}

// ExpansionRatio is the average number of senses per unique word.
func (s Stats) ExpansionRatio() float64 {
	if s.UniqueWords == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.UniqueWords)
}

// Summarize computes run statistics from a finished entry list.
func Summarize(entries []core.CardEntry) Stats {
	words := make(map[string]bool, len(entries))
	stats := Stats{Entries: len(entries)}

	for _, entry := range entries {
		words[entry.SourceWord()] = true
		if entry.NeedsReview {
			stats.NeedsReview++
		}
	}
	stats.UniqueWords = len(words)

	return stats
}
