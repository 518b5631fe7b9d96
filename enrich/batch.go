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
	"log/slog"
	"time"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/core"
)

// Placeholder values assigned to entries for seed words whose batch failed
// every attempt. Downstream passes key off NeedsReview rather than these
// strings, but they keep the exported deck readable.
const (
	PlaceholderPOS        = "unknown"
	PlaceholderDefinition = "[needs review]"
)

// BatchProcessor turns one batch of seed words into card entries.
type BatchProcessor struct {
	enricher       ai.SenseEnricher
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for the enrichment call
// retryBaseDelay: base delay for backoff between attempts
func NewBatchProcessor(enricher ai.SenseEnricher, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		enricher:       enricher,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         slog.Default().With("component", "enrich"),
	}
}

// Process enriches a batch of seed words into card entries.
//
// Entries come back grouped by seed word in the order the batch was given,
// with an entry per sense. Senses the service attributed to words outside
// the batch are appended at the end. A batch that fails every attempt
// yields one placeholder entry per seed word with NeedsReview set, so the
// caller never loses track of a word. Process itself never fails.
func (bp *BatchProcessor) Process(ctx context.Context, batch []core.SeedWord) []core.CardEntry {
	if len(batch) == 0 {
		return nil
	}

	words := make([]string, len(batch))
	for i, seed := range batch {
		words[i] = seed.Word
	}

	var senses []ai.RawSense
	err := RetryWithBackoff(ctx, func() error {
		var err error
		senses, err = bp.enricher.EnrichWords(ctx, words)
		if err != nil {
			return err
		}
		if len(senses) == 0 {
			// An empty result is indistinguishable from a parse failure;
			// treat it as a failed attempt so the retry loop runs.
			return ai.ErrEmptyResponse
		}
		return nil
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		bp.logger.Warn("batch failed all attempts, emitting placeholders",
			"words", len(batch), "attempts", bp.maxRetries, "error", err)
		return placeholderEntries(batch)
	}

	return bp.assemble(batch, senses)
}

// assemble merges seed metadata into the raw senses and regroups them so
// every seed's senses sit at that seed's position in the batch.
func (bp *BatchProcessor) assemble(batch []core.SeedWord, senses []ai.RawSense) []core.CardEntry {
	seedsByWord := make(map[string]core.SeedWord, len(batch))
	for _, seed := range batch {
		seedsByWord[seed.Word] = seed
	}

	bySeed := make(map[string][]core.CardEntry, len(batch))
	var unmatched []core.CardEntry

	for _, sense := range senses {
		entry := core.CardEntry{
			Lemma:        sense.Lemma,
			OriginalWord: sense.OriginalWord,
			SenseNumber:  sense.SenseNumber,
			TotalSenses:  sense.TotalSenses,
			POS:          sense.POS,
			Definition:   sense.Definition,
			ExampleVI:    sense.ExampleVI,
			ExampleEN:    sense.ExampleEN,
		}
		if entry.SenseNumber == 0 {
			entry.SenseNumber = 1
		}
		if entry.TotalSenses == 0 {
			entry.TotalSenses = 1
		}

		source := entry.SourceWord()
		seed, known := seedsByWord[source]
		if !known {
			bp.logger.Debug("sense does not match any word in batch", "lemma", entry.Lemma, "source", source)
			unmatched = append(unmatched, entry)
			continue
		}

		entry.OriginalWord = seed.Word
		entry.FrequencyScore = seed.FrequencyScore
		entry.IsCompound = seed.IsCompound
		bySeed[source] = append(bySeed[source], entry)
	}

	result := make([]core.CardEntry, 0, len(senses))
	for _, seed := range batch {
		entries, ok := bySeed[seed.Word]
		if !ok {
			// Partial coverage: the word gets no entry this batch. It is
			// logged rather than placeholdered so a later run can retry it.
			bp.logger.Warn("word missing from enrichment response", "word", seed.Word)
			continue
		}
		result = append(result, entries...)
	}
	result = append(result, unmatched...)

	return result
}

// placeholderEntries builds one review-flagged entry per seed word.
func placeholderEntries(batch []core.SeedWord) []core.CardEntry {
	entries := make([]core.CardEntry, len(batch))
	for i, seed := range batch {
		entries[i] = core.CardEntry{
			Lemma:          seed.Word,
			OriginalWord:   seed.Word,
			SenseNumber:    1,
			TotalSenses:    1,
			POS:            PlaceholderPOS,
			Definition:     PlaceholderDefinition,
			FrequencyScore: seed.FrequencyScore,
			IsCompound:     seed.IsCompound,
			NeedsReview:    true,
		}
	}
	return entries
}
