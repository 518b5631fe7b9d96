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

package cleanup

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/lexikit/ai"
	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/enrich"
)

// POS categories whose definitions read as linguistics rather than
// vocabulary ("nominalizing prefix", "plural marker"). These entries get
// a practical usage note.
var technicalPOS = []string{
	"particle", "marker", "prefix", "suffix", "classifier",
	"auxiliary", "determiner", "passive marker", "modal",
}

var technicalJargon = []string{
	"marker", "prefix", "suffix", "nominaliz", "classifier", "particle",
}

// NeedsUsageNote reports whether an entry's POS or definition is
// technical enough to warrant a usage note.
func NeedsUsageNote(entry core.CardEntry) bool {
	pos := strings.ToLower(entry.POS)
	for _, term := range technicalPOS {
		if strings.Contains(pos, term) {
			return true
		}
	}

	definition := strings.ToLower(entry.Definition)
	for _, term := range technicalJargon {
		if strings.Contains(definition, term) {
			return true
		}
	}
	return false
}

// Pattern: Vietnamese phrase followed by "= English", as produced in
// usage note examples ("sự thật = the truth").
var notePatternRe = regexp.MustCompile(`([a-zA-ZÀ-ỹ]+(?:\s+[a-zA-ZÀ-ỹ]+)*)\s*=\s*(?:the\s+)?([a-zA-Z\s,]+?)(?:[,.)]|$)`)

// MaskUsageNote replaces the Vietnamese side of "vietnamese = english"
// patterns with the first English word in brackets, so the note does not
// give away the card's answer.
func MaskUsageNote(note string) string {
	if note == "" {
		return note
	}

	return notePatternRe.ReplaceAllStringFunc(note, func(match string) string {
		sub := notePatternRe.FindStringSubmatch(match)
		english := strings.TrimSpace(sub[2])

		mask := sub[1]
		if english != "" {
			first := strings.Fields(strings.SplitN(english, ",", 2)[0])
			if len(first) > 0 {
				mask = first[0]
			}
		}

		trailer := ""
		if r := match[len(match)-1]; r == ',' || r == '.' || r == ')' {
			trailer = string(r)
		}
		return "[" + mask + "] = " + english + trailer
	})
}

// UsageNoteAnnotator fills in usage notes for technical entries.
type UsageNoteAnnotator struct {
	annotator  ai.UsageAnnotator
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewUsageNoteAnnotator creates a usage note annotator.
func NewUsageNoteAnnotator(annotator ai.UsageAnnotator, batchSize, maxRetries int, retryDelay time.Duration) *UsageNoteAnnotator {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &UsageNoteAnnotator{
		annotator:  annotator,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     slog.Default().With("component", "cleanup"),
	}
}

// Annotate requests notes for every technical entry that does not have
// one yet and writes them in place, masked. The service answers "null"
// for words it considers self-explanatory; those stay empty. Returns the
// number of notes added.
func (a *UsageNoteAnnotator) Annotate(ctx context.Context, entries []core.CardEntry) (int, error) {
	indexByLemma := make(map[string]int)
	var pending []int
	for i, entry := range entries {
		if entry.UsageNote == "" && NeedsUsageNote(entry) {
			pending = append(pending, i)
			indexByLemma[entry.Lemma] = i
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	a.logger.Info("annotating technical entries", "entries", len(pending))

	added := 0
	for start := 0; start < len(pending); start += a.batchSize {
		select {
		case <-ctx.Done():
			return added, ctx.Err()
		default:
		}

		end := start + a.batchSize
		if end > len(pending) {
			end = len(pending)
		}

		queries := make([]ai.UsageQuery, 0, end-start)
		for _, i := range pending[start:end] {
			queries = append(queries, ai.UsageQuery{
				Lemma:      entries[i].Lemma,
				POS:        entries[i].POS,
				Definition: entries[i].Definition,
			})
		}

		var notes []ai.UsageNote
		err := enrich.RetryWithBackoff(ctx, func() error {
			var err error
			notes, err = a.annotator.AnnotateUsage(ctx, queries)
			return err
		}, a.maxRetries, a.retryDelay)
		if err != nil {
			a.logger.Warn("usage note batch failed", "entries", len(queries), "error", err)
			continue
		}

		for _, note := range notes {
			text := strings.TrimSpace(note.Note)
			if text == "" || strings.EqualFold(text, "null") {
				continue
			}
			if i, ok := indexByLemma[note.Lemma]; ok {
				entries[i].UsageNote = MaskUsageNote(text)
				added++
			}
		}
	}

	return added, nil
}
