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
	"regexp"
	"strings"

	"github.com/poiesic/lexikit/core"
)

// Completion models occasionally emit the POS as a serialized list,
// "['adverb', 'adjective']" instead of "adverb, adjective".
var posListItemRe = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

// Known POS corrections for specific words the model repeatedly mislabels.
var knownPOSFixes = map[string]string{
	"hội đồng":  "noun",
	"sử dụng":   "verb",
	"di chuyển": "verb",
}

var standardPOS = map[string]bool{
	"noun": true, "verb": true, "adjective": true, "adverb": true,
}

// NormalizePOS rewrites a list-shaped POS string into a comma-joined
// form. Anything else passes through unchanged.
func NormalizePOS(pos string) string {
	trimmed := strings.TrimSpace(pos)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return pos
	}

	matches := posListItemRe.FindAllStringSubmatch(trimmed, -1)
	if len(matches) == 0 {
		return pos
	}

	items := make([]string, 0, len(matches))
	for _, m := range matches {
		item := m[1]
		if item == "" {
			item = m[2]
		}
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return pos
	}
	return strings.Join(items, ", ")
}

// FixKnownPOS applies per-word corrections and resolves the bogus
// "verb root" tag from the definition. Returns true if the entry changed.
func FixKnownPOS(entry *core.CardEntry) bool {
	if fix, ok := knownPOSFixes[entry.SourceWord()]; ok && !standardPOS[entry.POS] {
		entry.POS = fix
		return true
	}

	if entry.POS == "verb root" {
		if strings.Contains(strings.ToLower(entry.Definition), "to ") {
			entry.POS = "verb"
		} else {
			entry.POS = "noun"
		}
		return true
	}

	return false
}

// Dedupe removes entries that share both source word and definition,
// keeping the first occurrence. Returns the kept entries and the number
// removed.
func Dedupe(entries []core.CardEntry) ([]core.CardEntry, int) {
	type dupKey struct {
		word       string
		definition string
	}

	seen := make(map[dupKey]bool, len(entries))
	kept := entries[:0:0]
	removed := 0

	for _, entry := range entries {
		key := dupKey{entry.SourceWord(), entry.Definition}
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, entry)
	}

	return kept, removed
}

// PolishStats reports what the polish pass changed.
type PolishStats struct {
	DuplicatesRemoved int
	POSNormalized     int
	POSCorrected      int
}

// Polish runs the mechanical quality fixes: dedupe, POS normalization,
// known POS corrections, sense recount, and rank renumbering.
func Polish(entries []core.CardEntry) ([]core.CardEntry, PolishStats) {
	var stats PolishStats

	entries, stats.DuplicatesRemoved = Dedupe(entries)

	for i := range entries {
		if normalized := NormalizePOS(entries[i].POS); normalized != entries[i].POS {
			entries[i].POS = normalized
			stats.POSNormalized++
		}
		if FixKnownPOS(&entries[i]) {
			stats.POSCorrected++
		}
	}

	RecountSenses(entries)
	RenumberRanks(entries)

	return entries, stats
}
