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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/ai/gemini"
	"github.com/poiesic/lexikit/audio"
	"github.com/poiesic/lexikit/audio/gcloud"
	"github.com/poiesic/lexikit/cache"
	"github.com/poiesic/lexikit/cleanup"
	"github.com/poiesic/lexikit/deck"
	"github.com/poiesic/lexikit/enrich"
	"github.com/poiesic/lexikit/export"
	"github.com/poiesic/lexikit/wordlist"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "lexikit",
		Usage:  "Vietnamese vocabulary deck builder",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "wordlist",
				Usage:  "Generate the ranked candidate word list",
				Action: wordlistCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "zipf",
						Usage:    "Path to word<TAB>zipf frequency table",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output CSV path for candidate words",
						Value:   "candidates.csv",
					},
					&cli.IntFlag{
						Name:  "single-limit",
						Usage: "How many single words to take from the frequency table",
						Value: 2500,
					},
					&cli.IntFlag{
						Name:  "suggest",
						Usage: "How many extra compounds to request from the LLM (0 disables)",
						Value: 100,
					},
				},
			},
			{
				Name:   "enrich",
				Usage:  "Enrich candidate words into card entries",
				Action: enrichCommand,
				Flags: append(llmFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Candidate word CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output CSV path for enriched entries",
						Value:   "deck.csv",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the enrichment cache directory",
						Value: ".lexikit-cache",
					},
					&cli.IntFlag{
						Name:  "target",
						Usage: "Number of card entries to stop at",
						Value: 2000,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of words to enrich per request",
						Value: 15,
					},
				),
			},
			{
				Name:   "filter-senses",
				Usage:  "Remove rare senses of polysemous words",
				Action: filterSensesCommand,
				Flags: append(llmFlags(),
					entryIOFlags(
						&cli.IntFlag{
							Name:  "batch-size",
							Usage: "Number of senses to rate per request",
							Value: 20,
						})...),
			},
			{
				Name:   "merge-senses",
				Usage:  "Merge over-split sense pairs into single entries",
				Action: mergeSensesCommand,
				Flags: append(llmFlags(),
					entryIOFlags(
						&cli.IntFlag{
							Name:  "batch-size",
							Usage: "Number of sense groups to review per request",
							Value: 25,
						})...),
			},
			{
				Name:   "annotate",
				Usage:  "Add usage notes to entries with overly technical definitions",
				Action: annotateCommand,
				Flags: append(llmFlags(),
					entryIOFlags(
						&cli.IntFlag{
							Name:  "batch-size",
							Usage: "Number of entries to annotate per request",
							Value: 20,
						})...),
			},
			{
				Name:   "verify",
				Usage:  "Run mechanical cleanup and consistency checks",
				Action: verifyCommand,
				Flags: entryIOFlags(
					&cli.StringFlag{
						Name:  "zipf",
						Usage: "Frequency table for rank ordering checks (optional)",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Zipf difference above which an ordering mismatch is reported",
						Value: 0.5,
					}),
			},
			{
				Name:   "audio",
				Usage:  "Synthesize pronunciation audio for every entry",
				Action: audioCommand,
				Flags: entryIOFlags(
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory audio files are written to",
						Value: "audio",
					},
					&cli.StringFlag{
						Name:  "voice",
						Usage: "Voice to use (female, male)",
						Value: "female",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Simultaneous synthesis requests",
						Value: 4,
					},
					&cli.DurationFlag{
						Name:  "rate-delay",
						Usage: "Pause before each request",
						Value: 500 * time.Millisecond,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per entry",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for backoff between attempts",
						Value: 2 * time.Second,
					}),
			},
			{
				Name:   "pack",
				Usage:  "Bundle the finished deck, media, and manifest into an archive",
				Action: packCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Enriched entry CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output archive path",
						Value:   "deck.zip",
					},
					&cli.StringFlag{
						Name:  "media-dir",
						Usage: "Directory referenced audio files are read from",
						Value: "audio",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Deck name recorded in the manifest",
						Value: "Vietnamese Vocabulary",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// llmFlags are shared by every command that talks to the completion service.
func llmFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Completion service API key",
			EnvVars: []string{"GEMINI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Model identifier",
			Value: "gemini-2.5-flash",
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum retry attempts for failed requests",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for backoff between attempts",
			Value: 2 * time.Second,
		},
	}
}

// entryIOFlags prepends the entry CSV input/output flags shared by the
// cleanup commands.
func entryIOFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Enriched entry CSV",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output CSV path (defaults to rewriting the input)",
		},
	}
	return append(flags, extra...)
}

func newProvider(ctx context.Context, c *cli.Context) (ai.Provider, error) {
	config := ai.NewConfig(
		ai.WithAPIKey(c.String("api-key")),
		ai.WithModel(c.String("model")),
	)
	provider, err := gemini.NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return provider, nil
}

func outputPath(c *cli.Context) string {
	if out := c.String("output"); out != "" {
		return out
	}
	return c.String("input")
}

func wordlistCommand(c *cli.Context) error {
	ctx := context.Background()

	table, err := wordlist.LoadZipfTableFile(c.String("zipf"))
	if err != nil {
		return fmt.Errorf("failed to load frequency table: %w", err)
	}

	// Compound suggestions are optional: without a key the curated
	// categories still produce a full list.
	var suggester ai.CompoundSuggester
	suggestCount := c.Int("suggest")
	if suggestCount > 0 && os.Getenv("GEMINI_API_KEY") != "" {
		config := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
		provider, err := gemini.NewProvider(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to create provider: %w", err)
		}
		defer provider.Close()
		suggester = provider.Compounds()
	}

	generator := wordlist.NewGenerator(table, suggester, &wordlist.GeneratorConfig{
		SingleWordLimit: c.Int("single-limit"),
		SuggestCount:    suggestCount,
	})

	seeds, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("word list generation failed: %w", err)
	}

	if err := deck.WriteSeedsFile(c.String("output"), seeds); err != nil {
		return fmt.Errorf("failed to write candidate list: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d candidate words to %s\n", len(seeds), c.String("output"))
	return nil
}

func enrichCommand(c *cli.Context) error {
	ctx := context.Background()

	seeds, err := deck.ReadSeedsFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read candidate list: %w", err)
	}

	provider, err := newProvider(ctx, c)
	if err != nil {
		return err
	}
	defer provider.Close()

	entryCache, err := cache.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open enrichment cache: %w", err)
	}
	defer entryCache.Close()

	config := &enrich.Config{
		TargetEntries:  c.Int("target"),
		BatchSize:      c.Int("batch-size"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		ReportInterval: 100,
	}

	pipeline := enrich.NewPipeline(provider.Enricher(), entryCache, config, os.Stderr)
	entries, err := pipeline.Run(ctx, seeds)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	if err := deck.WriteEntriesFile(c.String("output"), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	stats := enrich.Summarize(entries)
	fmt.Fprintf(os.Stderr, "Wrote %d entries (%d words, %d flagged for review) to %s\n",
		stats.Entries, stats.UniqueWords, stats.NeedsReview, c.String("output"))
	return nil
}

func filterSensesCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	provider, err := newProvider(ctx, c)
	if err != nil {
		return err
	}
	defer provider.Close()

	filter := cleanup.NewRareSenseFilter(provider.Rater(),
		c.Int("batch-size"), c.Int("max-retries"), c.Duration("retry-delay"))
	entries, removed, err := filter.Filter(ctx, entries)
	if err != nil {
		return fmt.Errorf("sense filtering failed: %w", err)
	}

	if err := deck.WriteEntriesFile(outputPath(c), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Removed %d rare senses, %d entries remain\n", removed, len(entries))
	return nil
}

func mergeSensesCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	provider, err := newProvider(ctx, c)
	if err != nil {
		return err
	}
	defer provider.Close()

	merger := cleanup.NewSenseMerger(provider.Advisor(),
		c.Int("batch-size"), c.Int("max-retries"), c.Duration("retry-delay"))
	entries, merged, err := merger.Merge(ctx, entries)
	if err != nil {
		return fmt.Errorf("sense merging failed: %w", err)
	}

	if err := deck.WriteEntriesFile(outputPath(c), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Merged %d sense pairs, %d entries remain\n", merged, len(entries))
	return nil
}

func annotateCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	provider, err := newProvider(ctx, c)
	if err != nil {
		return err
	}
	defer provider.Close()

	annotator := cleanup.NewUsageNoteAnnotator(provider.Annotator(),
		c.Int("batch-size"), c.Int("max-retries"), c.Duration("retry-delay"))
	noted, err := annotator.Annotate(ctx, entries)
	if err != nil {
		return fmt.Errorf("usage annotation failed: %w", err)
	}

	if err := deck.WriteEntriesFile(outputPath(c), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Added %d usage notes\n", noted)
	return nil
}

func verifyCommand(c *cli.Context) error {
	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	entries, polish := cleanup.Polish(entries)
	entries, removed := cleanup.RemoveEntries(entries, cleanup.DefaultRemovals)

	if zipfPath := c.String("zipf"); zipfPath != "" {
		table, err := wordlist.LoadZipfTableFile(zipfPath)
		if err != nil {
			return fmt.Errorf("failed to load frequency table: %w", err)
		}
		for _, m := range cleanup.VerifyFrequencies(entries, table, c.Float64("threshold")) {
			fmt.Fprintf(os.Stderr, "frequency drift: %s at rank %d stored %.2f, table says %.2f\n",
				m.Lemma, m.Rank, m.Stored, m.Fresh)
		}
	}

	flagged := cleanup.CheckExamples(entries)

	if err := deck.WriteEntriesFile(outputPath(c), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	fmt.Fprintf(os.Stderr,
		"Normalized %d POS values, deduped %d, removed %d, flagged %d examples for review\n",
		polish.POSNormalized, polish.DuplicatesRemoved, len(removed), flagged)
	return nil
}

func audioCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	apiKey := os.Getenv("GOOGLE_TTS_API_KEY")
	synth, err := gcloud.New(apiKey)
	if err != nil {
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	voice := audio.FemaleVoice()
	if strings.EqualFold(c.String("voice"), "male") {
		voice = audio.MaleVoice()
	}

	generator := audio.NewGenerator(synth, &audio.GeneratorConfig{
		Dir:         c.String("dir"),
		Voice:       voice,
		Concurrency: c.Int("concurrency"),
		MaxRetries:  c.Int("max-retries"),
		RetryDelay:  c.Duration("retry-delay"),
		RateDelay:   c.Duration("rate-delay"),
	})

	stats, err := generator.Generate(ctx, entries)
	if err != nil {
		return fmt.Errorf("audio generation failed: %w", err)
	}

	if err := deck.WriteEntriesFile(outputPath(c), entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Audio: %d generated, %d skipped, %d failed\n",
		stats.Generated, stats.Skipped, stats.Failed)
	return nil
}

func packCommand(c *cli.Context) error {
	entries, err := deck.ReadEntriesFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	packager := export.NewPackager(c.String("name"), c.String("media-dir"))
	report, err := packager.WriteFile(c.String("output"), entries)
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	for _, missing := range report.MissingMedia {
		fmt.Fprintf(os.Stderr, "missing media: %s\n", missing)
	}
	fmt.Fprintf(os.Stderr, "Packaged %d entries and %d media files into %s (deck ID %d)\n",
		report.Manifest.EntryCount, report.Manifest.MediaCount,
		c.String("output"), uint64(report.Manifest.DeckID))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
