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

package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// FrequencyScorer supplies zipf frequency scores for Vietnamese words.
// A score of 0 means the word is unknown to the corpus.
type FrequencyScorer interface {
	// Score returns the zipf frequency of a word, 0 if unknown.
	Score(word string) float64

	// TopWords returns up to n words in descending score order.
	TopWords(n int) []string
}

// ZipfTable is a FrequencyScorer backed by a flat word-to-zipf table,
// typically exported from a frequency corpus as tab-separated lines.
type ZipfTable struct {
	scores map[string]float64
	sorted []string
}

// LoadZipfTable reads "word<TAB>zipf" lines from r. Blank lines and lines
// starting with '#' are skipped. Later duplicates of a word are ignored.
func LoadZipfTable(r io.Reader) (*ZipfTable, error) {
	scores := make(map[string]float64)
	var order []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, score, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected word<TAB>score, got %q", lineNo, line)
		}

		word = strings.TrimSpace(word)
		value, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad score for %q: %w", lineNo, word, err)
		}

		if _, exists := scores[word]; exists {
			continue
		}
		scores[word] = value
		order = append(order, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frequency table: %w", err)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	return &ZipfTable{scores: scores, sorted: order}, nil
}

// LoadZipfTableFile opens path and loads it as a zipf table.
func LoadZipfTableFile(path string) (*ZipfTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frequency table: %w", err)
	}
	defer f.Close()

	return LoadZipfTable(f)
}

// Score returns the zipf frequency of a word, 0 if unknown.
func (z *ZipfTable) Score(word string) float64 {
	return z.scores[word]
}

// TopWords returns up to n words in descending score order.
func (z *ZipfTable) TopWords(n int) []string {
	if n > len(z.sorted) {
		n = len(z.sorted)
	}
	if n <= 0 {
		return nil
	}

	words := make([]string, n)
	copy(words, z.sorted[:n])
	return words
}

// Len returns the number of words in the table.
func (z *ZipfTable) Len() int {
	return len(z.scores)
}
