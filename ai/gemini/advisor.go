package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/lexikit/ai"
	"github.com/tmc/langchaingo/llms"
)

// MergeAdvisor implements ai.MergeAdvisor using the Gemini chat API.
type MergeAdvisor struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

type decisionJSON struct {
	BaseWord         string `json:"base_word"`
	Action           string `json:"action"`
	MergedDefinition string `json:"merged_definition"`
	MergedPOS        string `json:"merged_pos"`
	Reason           string `json:"reason"`
}

func newMergeAdvisor(client llms.Model, temperature float64) *MergeAdvisor {
	return &MergeAdvisor{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "gemini-advisor"),
	}
}

// AdviseMerges reviews sense groups and returns one decision per base word.
// Decisions with an unrecognized action default to keep: a malformed
// answer must never cause a merge.
func (a *MergeAdvisor) AdviseMerges(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error) {
	text, err := generate(ctx, a.client, a.temperature, mergePrompt(groups))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeArray(text, func(j decisionJSON) bool {
		return j.BaseWord != ""
	})
	if err != nil {
		return nil, err
	}

	decisions := make([]ai.MergeDecision, 0, len(parsed))
	for _, j := range parsed {
		action := ai.MergeAction(j.Action)
		if action != ai.ActionMerge {
			action = ai.ActionKeep
		}
		if action == ai.ActionMerge && j.MergedDefinition == "" {
			a.logger.Warn("merge advice without merged definition, keeping", "base_word", j.BaseWord)
			action = ai.ActionKeep
		}
		decisions = append(decisions, ai.MergeDecision{
			BaseWord:         j.BaseWord,
			Action:           action,
			MergedDefinition: j.MergedDefinition,
			MergedPOS:        j.MergedPOS,
			Reason:           j.Reason,
		})
	}

	return decisions, nil
}
