package audio_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexikit/audio"
	"github.com/poiesic/lexikit/audio/mock"
	"github.com/poiesic/lexikit/core"
)

func testConfig(dir string) *audio.GeneratorConfig {
	return &audio.GeneratorConfig{
		Dir:         dir,
		Voice:       audio.FemaleVoice(),
		Concurrency: 2,
		MaxRetries:  3,
		RetryDelay:  time.Millisecond,
		RateDelay:   0,
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "1_xin_chào.mp3", audio.Filename(1, "xin chào"))
	assert.Equal(t, "42_a_b.mp3", audio.Filename(42, "a/b"))
}

func TestGeneratorWritesFilesAndSetsRefs(t *testing.T) {
	dir := t.TempDir()
	synth := mock.NewMockSynthesizer()
	gen := audio.NewGenerator(synth, testConfig(dir))

	entries := []core.CardEntry{
		{Rank: 1, Lemma: "xin chào"},
		{Rank: 2, Lemma: "cảm ơn"},
	}

	stats, err := gen.Generate(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Generated)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)

	assert.Equal(t, "[sound:1_xin_chào.mp3]", entries[0].AudioRef)
	assert.Equal(t, "[sound:2_cảm_ơn.mp3]", entries[1].AudioRef)

	data, err := os.ReadFile(filepath.Join(dir, "1_xin_chào.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3:xin chào"), data)
}

func TestGeneratorSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_xin_chào.mp3"), []byte("old"), 0644))

	synth := mock.NewMockSynthesizer()
	gen := audio.NewGenerator(synth, testConfig(dir))

	entries := []core.CardEntry{{Rank: 1, Lemma: "xin chào"}}

	stats, err := gen.Generate(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Generated)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, "[sound:1_xin_chào.mp3]", entries[0].AudioRef)
	assert.Equal(t, 0, synth.CallCount())

	// existing file is left untouched
	data, err := os.ReadFile(filepath.Join(dir, "1_xin_chào.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)
}

func TestGeneratorCountsFailuresWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	synth := mock.NewMockSynthesizer()
	synth.SynthesizeFunc = func(ctx context.Context, text string, voice audio.Voice) ([]byte, error) {
		if text == "hỏng" {
			return nil, errors.New("synthesis backend unavailable")
		}
		return []byte("mp3:" + text), nil
	}
	gen := audio.NewGenerator(synth, testConfig(dir))

	entries := []core.CardEntry{
		{Rank: 1, Lemma: "hỏng"},
		{Rank: 2, Lemma: "tốt"},
	}

	stats, err := gen.Generate(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Generated)
	assert.Equal(t, 1, stats.Failed)

	assert.Empty(t, entries[0].AudioRef)
	assert.Equal(t, "[sound:2_tốt.mp3]", entries[1].AudioRef)

	_, statErr := os.Stat(filepath.Join(dir, "1_hỏng.mp3"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGeneratorRetriesTransientFailures(t *testing.T) {
	dir := t.TempDir()
	attempts := 0
	synth := mock.NewMockSynthesizer()
	synth.SynthesizeFunc = func(ctx context.Context, text string, voice audio.Voice) ([]byte, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("504 gateway timeout")
		}
		return []byte("mp3:" + text), nil
	}
	cfg := testConfig(dir)
	cfg.Concurrency = 1
	gen := audio.NewGenerator(synth, cfg)

	entries := []core.CardEntry{{Rank: 1, Lemma: "kiên trì"}}

	stats, err := gen.Generate(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Generated)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 3, attempts)
}

func TestGeneratorCanceledContext(t *testing.T) {
	dir := t.TempDir()
	synth := mock.NewMockSynthesizer()
	gen := audio.NewGenerator(synth, testConfig(dir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries := []core.CardEntry{{Rank: 1, Lemma: "xin chào"}}

	_, err := gen.Generate(ctx, entries)
	assert.ErrorIs(t, err, context.Canceled)
}
