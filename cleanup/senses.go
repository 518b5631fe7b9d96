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

package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/enrich"
)

// ExtraSenseFrequency is the Extra column recording a kept sense's
// assessed frequency class.
const ExtraSenseFrequency = "sense_frequency"

// RareSenseFilter removes senses of polysemous words that a learner
// rarely encounters. Single-sense entries are never touched.
type RareSenseFilter struct {
	rater      ai.SenseRater
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewRareSenseFilter creates a rare-sense filter.
func NewRareSenseFilter(rater ai.SenseRater, batchSize, maxRetries int, retryDelay time.Duration) *RareSenseFilter {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &RareSenseFilter{
		rater:      rater,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     slog.Default().With("component", "cleanup"),
	}
}

// Filter rates every polysemous sense in batches and drops the rare
// ones. A batch whose rating fails every attempt defaults to moderate,
// which keeps all its senses: losing a rating must never lose a card.
// Kept entries are recounted and re-ranked; kept polysemous senses get
// their frequency class recorded in Extra.
func (f *RareSenseFilter) Filter(ctx context.Context, entries []core.CardEntry) ([]core.CardEntry, int, error) {
	var poly []int
	for i, entry := range entries {
		if entry.TotalSenses > 1 {
			poly = append(poly, i)
		}
	}
	if len(poly) == 0 {
		return entries, 0, nil
	}

	f.logger.Info("rating polysemous senses", "senses", len(poly), "total", len(entries))

	ratings := make(map[string]ai.SenseFrequency, len(poly))
	for start := 0; start < len(poly); start += f.batchSize {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		end := start + f.batchSize
		if end > len(poly) {
			end = len(poly)
		}

		refs := make([]ai.SenseRef, 0, end-start)
		for _, i := range poly[start:end] {
			refs = append(refs, ai.SenseRef{
				Lemma:      entries[i].Lemma,
				POS:        entries[i].POS,
				Definition: entries[i].Definition,
			})
		}

		var rated []ai.SenseRating
		err := enrich.RetryWithBackoff(ctx, func() error {
			var err error
			rated, err = f.rater.RateSenses(ctx, refs)
			return err
		}, f.maxRetries, f.retryDelay)
		if err != nil {
			f.logger.Warn("sense rating batch failed, keeping its senses",
				"senses", len(refs), "error", err)
			continue
		}

		for _, r := range rated {
			ratings[r.Lemma] = r.Frequency
		}
	}

	kept := entries[:0:0]
	removed := 0
	for _, entry := range entries {
		if entry.TotalSenses <= 1 {
			kept = append(kept, entry)
			continue
		}

		freq, ok := ratings[entry.Lemma]
		if !ok {
			freq = ai.FrequencyModerate
		}
		if freq == ai.FrequencyRare {
			removed++
			continue
		}

		if entry.Extra == nil {
			entry.Extra = make(map[string]string)
		}
		entry.Extra[ExtraSenseFrequency] = string(freq)
		kept = append(kept, entry)
	}

	RecountSenses(kept)
	RenumberRanks(kept)

	f.logger.Info("rare senses removed", "removed", removed, "kept", len(kept))
	return kept, removed, nil
}
