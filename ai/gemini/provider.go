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
	"strings"

	"github.com/poiesic/lexikit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Provider implements ai.Provider backed by the Gemini API.
// One client is shared by all services.
type Provider struct {
	client    llms.Model
	enricher  *SenseEnricher
	rater     *SenseRater
	advisor   *MergeAdvisor
	annotator *UsageAnnotator
	compounds *CompoundSuggester
}

// NewProvider creates a provider and all its services from the given
// configuration. This is the only place where a missing or invalid API key
// halts everything, before any processing starts.
//
// Returns ai.Provider interface to enforce abstraction.
func NewProvider(ctx context.Context, config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newProviderWithClient(client, config), nil
}

// newProviderWithClient wires the services around an existing client.
// Split out so tests can inject a fake llms.Model.
func newProviderWithClient(client llms.Model, config *ai.Config) *Provider {
	return &Provider{
		client:    client,
		enricher:  newSenseEnricher(client, config.Temperature),
		rater:     newSenseRater(client, config.Temperature),
		advisor:   newMergeAdvisor(client, config.Temperature),
		annotator: newUsageAnnotator(client, config.Temperature),
		compounds: newCompoundSuggester(client, config.Temperature),
	}
}

// Enricher returns the sense enrichment service.
func (p *Provider) Enricher() ai.SenseEnricher { return p.enricher }

// Rater returns the sense frequency rating service.
func (p *Provider) Rater() ai.SenseRater { return p.rater }

// Advisor returns the sense merge advice service.
func (p *Provider) Advisor() ai.MergeAdvisor { return p.advisor }

// Annotator returns the usage note service.
func (p *Provider) Annotator() ai.UsageAnnotator { return p.annotator }

// Compounds returns the compound suggestion service.
func (p *Provider) Compounds() ai.CompoundSuggester { return p.compounds }

// Close releases resources held by the provider.
// The langchaingo client holds no connection state of its own.
func (p *Provider) Close() error { return nil }

// generate issues one completion call and returns the raw response text.
// The text is what the model produced; callers run it through the
// defensive parsers in parse.go.
func generate(ctx context.Context, client llms.Model, temperature float64, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ai.ErrEmptyResponse
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
