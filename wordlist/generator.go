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

package wordlist

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/core"
)

// GeneratorConfig holds configuration for candidate list generation.
type GeneratorConfig struct {
	// SingleWordLimit is how many words to take from the frequency table.
	// Generous relative to the deck target so filtering has headroom.
	SingleWordLimit int

	// SuggestCount is how many extra compounds to request from the
	// suggester when one is configured
	SuggestCount int
}

// DefaultGeneratorConfig returns the standard generation parameters.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		SingleWordLimit: 2500,
		SuggestCount:    100,
	}
}

// Generator produces the ranked candidate seed list.
type Generator struct {
	scorer    FrequencyScorer
	suggester ai.CompoundSuggester
	config    *GeneratorConfig
	logger    *slog.Logger
}

// NewGenerator creates a candidate list generator.
// suggester may be nil, in which case only curated compounds are used.
func NewGenerator(scorer FrequencyScorer, suggester ai.CompoundSuggester, config *GeneratorConfig) *Generator {
	if config == nil {
		config = DefaultGeneratorConfig()
	}
	return &Generator{
		scorer:    scorer,
		suggester: suggester,
		config:    config,
		logger:    slog.Default().With("component", "wordlist"),
	}
}

// Generate builds the candidate list: frequency-table words plus curated
// and suggested compounds, filtered, deduplicated, scored, and ranked by
// descending zipf frequency. Words the frequency table does not know are
// dropped.
func (g *Generator) Generate(ctx context.Context) ([]core.SeedWord, error) {
	singles := g.scorer.TopWords(g.config.SingleWordLimit)
	compounds := g.compounds(ctx)

	seen := make(map[string]bool, len(singles)+len(compounds))
	var seeds []core.SeedWord

	add := func(word string, forceCompound bool) {
		if seen[word] || !IsValidEntry(word) {
			return
		}
		score := g.scorer.Score(word)
		if score <= 0 {
			return
		}

		tokens := TokenCount(word)
		seeds = append(seeds, core.SeedWord{
			Word:           word,
			TokenCount:     tokens,
			IsCompound:     forceCompound || tokens > 1,
			FrequencyScore: roundScore(score),
		})
		seen[word] = true
	}

	for _, word := range singles {
		add(word, false)
	}
	singleCount := len(seeds)

	for _, word := range compounds {
		add(word, true)
	}

	g.logger.Info("candidate list generated",
		"singles", singleCount, "compounds", len(seeds)-singleCount, "total", len(seeds))

	sort.SliceStable(seeds, func(i, j int) bool {
		return seeds[i].FrequencyScore > seeds[j].FrequencyScore
	})
	for i := range seeds {
		seeds[i].Rank = i + 1
	}

	return seeds, nil
}

// compounds merges the curated table with model suggestions.
func (g *Generator) compounds(ctx context.Context) []string {
	compounds := CuratedCompounds()

	if g.suggester == nil || g.config.SuggestCount <= 0 {
		return compounds
	}

	suggested, err := g.suggester.SuggestCompounds(ctx, compounds, g.config.SuggestCount)
	if err != nil {
		// Suggestions are best effort; the curated table alone is enough.
		g.logger.Warn("compound suggestion failed", "error", err)
		return compounds
	}

	seen := make(map[string]bool, len(compounds))
	for _, w := range compounds {
		seen[w] = true
	}
	for _, w := range suggested {
		w = strings.TrimSpace(w)
		if w != "" && !seen[w] {
			seen[w] = true
			compounds = append(compounds, w)
		}
	}
	return compounds
}

// roundScore keeps scores at four decimal places to match the interchange
// format.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
