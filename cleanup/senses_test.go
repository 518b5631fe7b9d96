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

func polysemyEntries() []core.CardEntry {
	return []core.CardEntry{
		{Lemma: "nhà", Rank: 1, SenseNumber: 1, TotalSenses: 1, POS: "noun", Definition: "house"},
		{Lemma: "là₁", Rank: 2, SenseNumber: 1, TotalSenses: 3, POS: "verb", Definition: "to be"},
		{Lemma: "là₂", Rank: 3, SenseNumber: 2, TotalSenses: 3, POS: "verb", Definition: "to iron clothes"},
		{Lemma: "là₃", Rank: 4, SenseNumber: 3, TotalSenses: 3, POS: "particle", Definition: "emphatic particle"},
	}
}

func TestRareSenseFilter_RemovesRareSenses(t *testing.T) {
	rater := mock.NewMockSenseRater()
	rater.RateSensesFunc = func(ctx context.Context, senses []ai.SenseRef) ([]ai.SenseRating, error) {
		ratings := make([]ai.SenseRating, len(senses))
		for i, s := range senses {
			freq := ai.FrequencyCommon
			if s.Lemma == "là₃" {
				freq = ai.FrequencyRare
			}
			ratings[i] = ai.SenseRating{Lemma: s.Lemma, Frequency: freq}
		}
		return ratings, nil
	}

	filter := NewRareSenseFilter(rater, 20, 3, time.Millisecond)
	kept, removed, err := filter.Filter(context.Background(), polysemyEntries())

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, kept, 3)

	// Group shrinks from 3 to 2 and is renumbered.
	assert.Equal(t, "là₁", kept[1].Lemma)
	assert.Equal(t, 2, kept[1].TotalSenses)
	assert.Equal(t, "là₂", kept[2].Lemma)
	assert.Equal(t, "common", kept[1].Extra[ExtraSenseFrequency])
	for i, e := range kept {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRareSenseFilter_SingleSenseNeverRated(t *testing.T) {
	rater := mock.NewMockSenseRater()
	filter := NewRareSenseFilter(rater, 20, 3, time.Millisecond)

	entries := []core.CardEntry{
		{Lemma: "nhà", SenseNumber: 1, TotalSenses: 1, Definition: "house"},
	}
	kept, removed, err := filter.Filter(context.Background(), entries)

	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, entries, kept)
	assert.Zero(t, rater.CallCount())
}

func TestRareSenseFilter_RatingFailureKeepsSenses(t *testing.T) {
	rater := mock.NewMockSenseRater()
	rater.RateSensesFunc = func(ctx context.Context, senses []ai.SenseRef) ([]ai.SenseRating, error) {
		return nil, errors.New("service down")
	}

	filter := NewRareSenseFilter(rater, 20, 2, time.Millisecond)
	kept, removed, err := filter.Filter(context.Background(), polysemyEntries())

	require.NoError(t, err)
	assert.Zero(t, removed, "unrated senses default to moderate and stay")
	assert.Len(t, kept, 4)
	assert.Equal(t, "moderate", kept[1].Extra[ExtraSenseFrequency])
}

func TestRareSenseFilter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	filter := NewRareSenseFilter(mock.NewMockSenseRater(), 20, 3, time.Millisecond)
	_, _, err := filter.Filter(ctx, polysemyEntries())
	assert.ErrorIs(t, err, context.Canceled)
}
