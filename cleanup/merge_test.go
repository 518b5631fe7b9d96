package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/ai/mock"
	"github.com/poiesic/lexikit/core"
)

func mergeEntries() []core.CardEntry {
	return []core.CardEntry{
		{Lemma: "biết₁", Rank: 1, SenseNumber: 1, TotalSenses: 2, POS: "verb", Definition: "to know a fact"},
		{Lemma: "biết₂", Rank: 2, SenseNumber: 2, TotalSenses: 2, POS: "verb", Definition: "to know how to"},
		{Lemma: "thấy₁", Rank: 3, SenseNumber: 1, TotalSenses: 2, POS: "verb", Definition: "to see"},
		{Lemma: "thấy₂", Rank: 4, SenseNumber: 2, TotalSenses: 2, POS: "verb", Definition: "to feel"},
		{Lemma: "nhà", Rank: 5, SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "house"},
	}
}

func TestSenseMerger_AppliesMergeDecisions(t *testing.T) {
	advisor := mock.NewMockMergeAdvisor()
	advisor.AdviseMergesFunc = func(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error) {
		decisions := make([]ai.MergeDecision, len(groups))
		for i, g := range groups {
			d := ai.MergeDecision{BaseWord: g.BaseWord, Action: ai.ActionKeep}
			if g.BaseWord == "biết" {
				d.Action = ai.ActionMerge
				d.MergedDefinition = "to know; to know how to"
				d.MergedPOS = "verb"
			}
			decisions[i] = d
		}
		return decisions, nil
	}

	merger := NewSenseMerger(advisor, 25, 3, time.Millisecond)
	kept, merged, err := merger.Merge(context.Background(), mergeEntries())

	require.NoError(t, err)
	assert.Equal(t, 1, merged)
	require.Len(t, kept, 4)

	assert.Equal(t, "biết", kept[0].Lemma, "merged entry loses its subscript")
	assert.Equal(t, "to know; to know how to", kept[0].Definition)
	assert.Equal(t, 1, kept[0].SenseNumber)
	assert.Equal(t, 1, kept[0].TotalSenses)

	// The kept group stays split, and ranks are contiguous again.
	assert.Equal(t, "thấy₁", kept[1].Lemma)
	assert.Equal(t, 2, kept[1].TotalSenses)
	for i, e := range kept {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestSenseMerger_OnlyTwoSenseGroupsReviewed(t *testing.T) {
	advisor := mock.NewMockMergeAdvisor()
	var reviewed []string
	advisor.AdviseMergesFunc = func(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error) {
		for _, g := range groups {
			reviewed = append(reviewed, g.BaseWord)
		}
		return nil, nil
	}

	entries := []core.CardEntry{
		{Lemma: "là₁", SenseNumber: 1, TotalSenses: 3},
		{Lemma: "là₂", SenseNumber: 2, TotalSenses: 3},
		{Lemma: "là₃", SenseNumber: 3, TotalSenses: 3},
		{Lemma: "biết₁", SenseNumber: 1, TotalSenses: 2},
		{Lemma: "biết₂", SenseNumber: 2, TotalSenses: 2},
	}

	merger := NewSenseMerger(advisor, 25, 3, time.Millisecond)
	_, merged, err := merger.Merge(context.Background(), entries)

	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.Equal(t, []string{"biết"}, reviewed, "three-sense groups are not merge candidates")
}

func TestSenseMerger_AdviceFailureKeepsGroups(t *testing.T) {
	advisor := mock.NewMockMergeAdvisor()
	advisor.AdviseMergesFunc = func(ctx context.Context, groups []ai.SenseGroup) ([]ai.MergeDecision, error) {
		return nil, errors.New("service down")
	}

	merger := NewSenseMerger(advisor, 25, 2, time.Millisecond)
	kept, merged, err := merger.Merge(context.Background(), mergeEntries())

	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.Len(t, kept, 5)
}

func TestSenseMerger_NoCandidates(t *testing.T) {
	merger := NewSenseMerger(mock.NewMockMergeAdvisor(), 25, 3, time.Millisecond)

	entries := []core.CardEntry{{Lemma: "nhà", SenseNumber: 1, TotalSenses: 1}}
	kept, merged, err := merger.Merge(context.Background(), entries)

	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.Equal(t, entries, kept)
}
