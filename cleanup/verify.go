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
	"strings"

	"github.com/poiesic/lexikit/core"
	"github.com/poiesic/lexikit/wordlist"
)

// DefaultRemovals lists lemmas that slipped through generation despite
// being proper nouns or bare loanwords. Subscripted lemmas remove a
// single sense; bare lemmas remove the whole entry.
var DefaultRemovals = []string{
	"john",   // English given name
	"video",  // English loanword
	"nguyễn", // Vietnamese surname
	"lê₃",    // surname sense
	"quân₂",  // given name sense
	"thiên₂", // given name sense
}

// RemoveEntries drops entries whose lemma is on the removal list, then
// recounts the affected sense groups and renumbers ranks. Returns the
// kept entries and the lemmas actually removed.
func RemoveEntries(entries []core.CardEntry, removals []string) ([]core.CardEntry, []string) {
	drop := make(map[string]bool, len(removals))
	for _, lemma := range removals {
		drop[lemma] = true
	}

	kept := entries[:0:0]
	var removed []string
	for _, entry := range entries {
		if drop[entry.Lemma] {
			removed = append(removed, entry.Lemma)
			continue
		}
		kept = append(kept, entry)
	}

	if len(removed) > 0 {
		RecountSenses(kept)
		RenumberRanks(kept)
	}

	return kept, removed
}

// FrequencyMismatch flags an entry whose stored score has drifted from
// the frequency table.
type FrequencyMismatch struct {
	Lemma  string
	Rank   int
	Stored float64
	Fresh  float64
}

// VerifyFrequencies compares each entry's stored score against a fresh
// lookup of its base word and reports differences above threshold. The
// entries themselves are not modified; drift is a report, not a fix.
func VerifyFrequencies(entries []core.CardEntry, scorer wordlist.FrequencyScorer, threshold float64) []FrequencyMismatch {
	var mismatches []FrequencyMismatch

	for _, entry := range entries {
		fresh := scorer.Score(core.BaseLemma(entry.Lemma))
		diff := entry.FrequencyScore - fresh
		if diff < 0 {
			diff = -diff
		}
		if diff > threshold {
			mismatches = append(mismatches, FrequencyMismatch{
				Lemma:  entry.Lemma,
				Rank:   entry.Rank,
				Stored: entry.FrequencyScore,
				Fresh:  fresh,
			})
		}
	}

	return mismatches
}

// CheckExamples flags entries whose Vietnamese example does not contain
// the base word. Flagged entries get NeedsReview set; the example is not
// rewritten, since guessing the intended sentence would be worse than
// surfacing the problem. Returns the number flagged.
func CheckExamples(entries []core.CardEntry) int {
	flagged := 0
	for i := range entries {
		if entries[i].ExampleVI == "" {
			continue
		}
		base := core.BaseLemma(entries[i].Lemma)
		if base == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(entries[i].ExampleVI), strings.ToLower(base)) {
			if !entries[i].NeedsReview {
				entries[i].NeedsReview = true
				flagged++
			}
		}
	}
	return flagged
}
