package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/lexikit/ai"
	"github.com/tmc/langchaingo/llms"
)

// SenseRater implements ai.SenseRater using the Gemini chat API.
type SenseRater struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

type ratingJSON struct {
	Lemma     string `json:"lemma"`
	Frequency string `json:"frequency"`
	Reason    string `json:"reason"`
}

func newSenseRater(client llms.Model, temperature float64) *SenseRater {
	return &SenseRater{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "gemini-rater"),
	}
}

// RateSenses asks for a frequency class per sense. Ratings with an
// unrecognized frequency value are dropped rather than guessed at.
func (r *SenseRater) RateSenses(ctx context.Context, senses []ai.SenseRef) ([]ai.SenseRating, error) {
	text, err := generate(ctx, r.client, r.temperature, ratingPrompt(senses))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeArray(text, func(j ratingJSON) bool {
		return j.Lemma != "" && j.Frequency != ""
	})
	if err != nil {
		return nil, err
	}

	ratings := make([]ai.SenseRating, 0, len(parsed))
	for _, j := range parsed {
		freq := ai.SenseFrequency(j.Frequency)
		switch freq {
		case ai.FrequencyCommon, ai.FrequencyModerate, ai.FrequencyRare:
		default:
			r.logger.Warn("unknown frequency class", "lemma", j.Lemma, "frequency", j.Frequency)
			continue
		}
		ratings = append(ratings, ai.SenseRating{
			Lemma:     j.Lemma,
			Frequency: freq,
			Reason:    j.Reason,
		})
	}

	return ratings, nil
}
