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

// SenseMerger collapses over-split sense pairs, where the enrichment
// model split one meaning into two entries a dictionary would list as
// one. Only exact two-sense groups are candidates; wider groups almost
// never over-split.
type SenseMerger struct {
	advisor    ai.MergeAdvisor
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewSenseMerger creates a sense merger.
func NewSenseMerger(advisor ai.MergeAdvisor, batchSize, maxRetries int, retryDelay time.Duration) *SenseMerger {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &SenseMerger{
		advisor:    advisor,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     slog.Default().With("component", "cleanup"),
	}
}

// Merge asks the advisor about every complete two-sense group and
// applies its merge decisions: the first sense keeps its position and
// takes the merged definition and POS, the second is removed. Groups
// whose advice fails stay untouched. Returns the surviving entries and
// the number of merges applied.
func (m *SenseMerger) Merge(ctx context.Context, entries []core.CardEntry) ([]core.CardEntry, int, error) {
	groupIndices := make(map[string][]int)
	for i, entry := range entries {
		if entry.TotalSenses == 2 {
			base := core.BaseLemma(entry.Lemma)
			groupIndices[base] = append(groupIndices[base], i)
		}
	}

	var bases []string
	for base, indices := range groupIndices {
		if len(indices) == 2 {
			bases = append(bases, base)
		}
	}
	if len(bases) == 0 {
		return entries, 0, nil
	}

	m.logger.Info("reviewing two-sense groups for merges", "groups", len(bases))

	decisions := make(map[string]ai.MergeDecision, len(bases))
	for start := 0; start < len(bases); start += m.batchSize {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		end := start + m.batchSize
		if end > len(bases) {
			end = len(bases)
		}

		groups := make([]ai.SenseGroup, 0, end-start)
		for _, base := range bases[start:end] {
			group := ai.SenseGroup{BaseWord: base}
			for _, i := range groupIndices[base] {
				group.Senses = append(group.Senses, ai.SenseRef{
					Lemma:      entries[i].Lemma,
					POS:        entries[i].POS,
					Definition: entries[i].Definition,
				})
			}
			groups = append(groups, group)
		}

		var advised []ai.MergeDecision
		err := enrich.RetryWithBackoff(ctx, func() error {
			var err error
			advised, err = m.advisor.AdviseMerges(ctx, groups)
			return err
		}, m.maxRetries, m.retryDelay)
		if err != nil {
			m.logger.Warn("merge advice batch failed, keeping its groups",
				"groups", len(groups), "error", err)
			continue
		}

		for _, d := range advised {
			if d.BaseWord != "" {
				decisions[d.BaseWord] = d
			}
		}
	}

	remove := make(map[int]bool)
	merged := 0
	for base, decision := range decisions {
		if decision.Action != ai.ActionMerge {
			continue
		}
		indices := groupIndices[base]

		first := &entries[indices[0]]
		first.Lemma = base
		if decision.MergedDefinition != "" {
			first.Definition = decision.MergedDefinition
		}
		if decision.MergedPOS != "" {
			first.POS = decision.MergedPOS
		}

		remove[indices[1]] = true
		merged++
	}

	kept := entries[:0:0]
	for i, entry := range entries {
		if !remove[i] {
			kept = append(kept, entry)
		}
	}

	RecountSenses(kept)
	RenumberRanks(kept)

	m.logger.Info("sense merges applied", "merged", merged, "kept", len(kept))
	return kept, merged, nil
}
