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

package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/lexikit/ai"
	"github.com/tmc/langchaingo/llms"
)

// SenseEnricher implements ai.SenseEnricher using the Gemini chat API.
type SenseEnricher struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// senseJSON matches the structure the enrichment prompt asks the model for.
type senseJSON struct {
	OriginalWord      string `json:"original_word"`
	Lemma             string `json:"lemma"`
	SenseNumber       int    `json:"sense_number"`
	TotalSenses       int    `json:"total_senses"`
	POS               string `json:"pos"`
	EnglishDefinition string `json:"english_definition"`
	ExampleVI         string `json:"example_vi"`
	ExampleEN         string `json:"example_en"`
}

func newSenseEnricher(client llms.Model, temperature float64) *SenseEnricher {
	return &SenseEnricher{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "gemini-enricher"),
	}
}

// EnrichWords submits one batch of words and parses the response into raw
// senses. One call, one parse; retry policy is the caller's concern.
func (e *SenseEnricher) EnrichWords(ctx context.Context, words []string) ([]ai.RawSense, error) {
	text, err := generate(ctx, e.client, e.temperature, enrichmentPrompt(words))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeArray(text, func(s senseJSON) bool {
		// A fragment without a lemma and definition is noise, not a sense.
		return s.Lemma != "" && s.EnglishDefinition != ""
	})
	if err != nil {
		e.logger.Warn("unparseable enrichment response",
			"words", len(words),
			"response_len", len(text))
		return nil, err
	}

	senses := make([]ai.RawSense, 0, len(parsed))
	for _, s := range parsed {
		senses = append(senses, ai.RawSense{
			OriginalWord: s.OriginalWord,
			Lemma:        s.Lemma,
			SenseNumber:  s.SenseNumber,
			TotalSenses:  s.TotalSenses,
			POS:          s.POS,
			Definition:   s.EnglishDefinition,
			ExampleVI:    s.ExampleVI,
			ExampleEN:    s.ExampleEN,
		})
	}

	e.logger.Debug("enriched batch", "words", len(words), "senses", len(senses))
	return senses, nil
}
