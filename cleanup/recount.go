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

import "github.com/poiesic/lexikit/core"

// RecountSenses renumbers every sense group in place. Entries sharing a
// base word form a group; each group's TotalSenses becomes its actual
// size, SenseNumber runs 1..n in list order, and lemmas get their
// subscript recomputed (a group reduced to one sense loses it). Passes
// that remove or merge senses call this so the counts never go stale.
func RecountSenses(entries []core.CardEntry) {
	groups := make(map[string][]int)
	for i, entry := range entries {
		base := core.BaseLemma(entry.Lemma)
		groups[base] = append(groups[base], i)
	}

	for base, indices := range groups {
		total := len(indices)
		for n, i := range indices {
			entries[i].SenseNumber = n + 1
			entries[i].TotalSenses = total
			entries[i].Lemma = core.SenseLemma(base, n+1, total)
		}
	}
}

// RenumberRanks reassigns contiguous 1-based ranks in list order.
func RenumberRanks(entries []core.CardEntry) {
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
