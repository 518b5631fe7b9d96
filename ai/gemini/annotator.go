package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/lexikit/ai"
	"github.com/tmc/langchaingo/llms"
)

// UsageAnnotator implements ai.UsageAnnotator using the Gemini chat API.
type UsageAnnotator struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

type noteJSON struct {
	Lemma string `json:"lemma"`
	Note  string `json:"note"`
}

func newUsageAnnotator(client llms.Model, temperature float64) *UsageAnnotator {
	return &UsageAnnotator{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "gemini-annotator"),
	}
}

// AnnotateUsage returns a practical usage note per queried lemma.
func (u *UsageAnnotator) AnnotateUsage(ctx context.Context, queries []ai.UsageQuery) ([]ai.UsageNote, error) {
	text, err := generate(ctx, u.client, u.temperature, usagePrompt(queries))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeArray(text, func(j noteJSON) bool {
		return j.Lemma != "" && j.Note != ""
	})
	if err != nil {
		return nil, err
	}

	notes := make([]ai.UsageNote, 0, len(parsed))
	for _, j := range parsed {
		notes = append(notes, ai.UsageNote{Lemma: j.Lemma, Note: j.Note})
	}

	u.logger.Debug("annotated usage", "queries", len(queries), "notes", len(notes))
	return notes, nil
}
