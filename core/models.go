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

package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for deck artifacts (deck IDs, note GUIDs).
// It is generated using content-based hashing so rebuilds are deterministic.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SeedWord is a candidate word from the ranked frequency list, before
// enrichment. Seeds are immutable once loaded.
type SeedWord struct {
	Word           string  // the word or compound, e.g. "nhà", "xe máy"
	Rank           int     // 1-based position in frequency order
	TokenCount     int     // number of syllable tokens
	IsCompound     bool    // more than one token
	FrequencyScore float64 // zipf frequency score
}

// CardEntry is one flashcard-worth of enriched content: one sense of one
// seed word. A polysemous seed expands into several entries, each carrying
// its sense index and the size of the sense group at creation time.
type CardEntry struct {
	Rank           int     // 1-based position in the final deck
	Lemma          string  // sense-subscripted form, e.g. "để₂"
	OriginalWord   string  // the originating seed word, e.g. "để"
	SenseNumber    int     // 1-based index within the sense group
	TotalSenses    int     // size of the sense group when the entry was created
	POS            string  // part-of-speech tag
	Definition     string  // short English definition
	ExampleVI      string  // Vietnamese example sentence
	ExampleEN      string  // English translation of the example
	UsageNote      string  // practical guidance for grammatical words, optional
	FrequencyScore float64 // copied from the originating seed
	IsCompound     bool    // copied from the originating seed
	AudioRef       string  // media reference, e.g. "[sound:1_nhà.mp3]"
	NeedsReview    bool    // set when enrichment degraded to a placeholder

	// Extra holds passthrough columns from upstream files that this tool
	// does not interpret. Keys are the original column names.
	Extra map[string]string
}

// subscript digits used for sense notation (để₁, để₂, ...).
var subscriptDigits = []rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// BaseLemma strips sense subscripts from a lemma.
// Example: "để₂" → "để".
func BaseLemma(lemma string) string {
	return strings.Map(func(r rune) rune {
		for _, d := range subscriptDigits {
			if r == d {
				return -1
			}
		}
		return r
	}, lemma)
}

// SenseLemma builds the subscripted lemma for the n-th sense of word.
// If totalSenses is 1 the word is returned unchanged.
// Example: SenseLemma("để", 2, 3) → "để₂".
func SenseLemma(word string, n, totalSenses int) string {
	if totalSenses <= 1 {
		return word
	}
	if n < 0 {
		n = 0
	}
	var b strings.Builder
	b.WriteString(word)
	if n == 0 {
		b.WriteRune(subscriptDigits[0])
		return b.String()
	}
	var digits []rune
	for n > 0 {
		digits = append(digits, subscriptDigits[n%10])
		n /= 10
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteRune(digits[i])
	}
	return b.String()
}

// SourceWord returns the seed identifier an entry originates from,
// falling back to the lemma's base form when OriginalWord is unset
// (the completion service does not always echo it back).
func (e *CardEntry) SourceWord() string {
	if e.OriginalWord != "" {
		return e.OriginalWord
	}
	return BaseLemma(e.Lemma)
}
