package gemini

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// CompoundSuggester implements ai.CompoundSuggester using the Gemini chat API.
type CompoundSuggester struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

func newCompoundSuggester(client llms.Model, temperature float64) *CompoundSuggester {
	return &CompoundSuggester{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "gemini-compounds"),
	}
}

// SuggestCompounds asks for up to n compounds not already in known.
// Blank suggestions are dropped; dedup against known is the caller's job.
func (c *CompoundSuggester) SuggestCompounds(ctx context.Context, known []string, n int) ([]string, error) {
	text, err := generate(ctx, c.client, c.temperature, compoundsPrompt(known, n))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeStringArray(text)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(parsed))
	for _, s := range parsed {
		s = strings.TrimSpace(s)
		if len([]rune(s)) < 2 {
			continue
		}
		suggestions = append(suggestions, s)
	}

	c.logger.Debug("suggested compounds", "requested", n, "returned", len(suggestions))
	return suggestions, nil
}
