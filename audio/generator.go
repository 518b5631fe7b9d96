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

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/enrich"
)

// GeneratorConfig holds configuration for audio generation.
type GeneratorConfig struct {
	// Dir is the directory audio files are written to
	Dir string

	// Voice selects the synthesis voice
	Voice Voice

	// Concurrency bounds simultaneous synthesis requests
	Concurrency int

	// MaxRetries is the maximum number of attempts per entry
	MaxRetries int

	// RetryDelay is the base delay for backoff between attempts
	RetryDelay time.Duration

	// RateDelay is a fixed pause before each request, to stay under the
	// service's request-per-minute limits
	RateDelay time.Duration
}

// DefaultGeneratorConfig returns the standard audio parameters.
func DefaultGeneratorConfig(dir string) *GeneratorConfig {
	return &GeneratorConfig{
		Dir:         dir,
		Voice:       FemaleVoice(),
		Concurrency: 4,
		MaxRetries:  3,
		RetryDelay:  2 * time.Second,
		RateDelay:   500 * time.Millisecond,
	}
}

// Stats summarizes an audio generation run.
type Stats struct {
	Generated int
	Skipped   int
	Failed    int
}

// Generator produces one MP3 per entry and records its Anki sound
// reference on the entry.
type Generator struct {
	synth  Synthesizer
	config *GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates an audio generator.
func NewGenerator(synth Synthesizer, config *GeneratorConfig) *Generator {
	if config == nil {
		config = DefaultGeneratorConfig("audio")
	}
	return &Generator{
		synth:  synth,
		config: config,
		logger: slog.Default().With("component", "audio"),
	}
}

// Filename builds the audio filename for an entry: rank, underscore,
// lemma with filesystem-hostile characters replaced.
func Filename(rank int, lemma string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_").Replace(lemma)
	return fmt.Sprintf("%d_%s.mp3", rank, safe)
}

// SoundRef wraps a filename in the deck's sound reference syntax.
func SoundRef(filename string) string {
	return "[sound:" + filename + "]"
}

// Generate synthesizes audio for every entry, writing files to the
// configured directory. Entries whose file already exists are skipped
// but still get their reference set, so an interrupted run resumes where
// it left off. A failed entry keeps an empty AudioRef and is counted;
// failures never abort the run. Entries are modified in place.
func (g *Generator) Generate(ctx context.Context, entries []core.CardEntry) (Stats, error) {
	if err := os.MkdirAll(g.config.Dir, 0755); err != nil {
		return Stats{}, fmt.Errorf("failed to create audio directory: %w", err)
	}

	pool, err := ants.NewPool(g.config.Concurrency)
	if err != nil {
		return Stats{}, err
	}
	defer pool.Release()

	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)

	for i := range entries {
		entry := &entries[i]
		filename := Filename(entry.Rank, entry.Lemma)
		path := filepath.Join(g.config.Dir, filename)

		if _, err := os.Stat(path); err == nil {
			entry.AudioRef = SoundRef(filename)
			mu.Lock()
			stats.Skipped++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if g.config.RateDelay > 0 {
				timer := time.NewTimer(g.config.RateDelay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}

			var mp3 []byte
			err := enrich.RetryWithBackoff(ctx, func() error {
				var err error
				mp3, err = g.synth.Synthesize(ctx, entry.Lemma, g.config.Voice)
				return err
			}, g.config.MaxRetries, g.config.RetryDelay)
			if err == nil {
				err = os.WriteFile(path, mp3, 0644)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.logger.Warn("audio synthesis failed", "lemma", entry.Lemma, "error", err)
				entry.AudioRef = ""
				stats.Failed++
				return
			}
			entry.AudioRef = SoundRef(filename)
			stats.Generated++
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			stats.Failed++
			mu.Unlock()
		}
	}

	wg.Wait()

	g.logger.Info("audio generation complete",
		"generated", stats.Generated, "skipped", stats.Skipped, "failed", stats.Failed)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}
