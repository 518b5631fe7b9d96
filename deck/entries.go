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

package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/poiesic/lexikit/core"
)

// Canonical column order for the enriched entry table. Columns outside
// this set are preserved in CardEntry.Extra and appended after these on
// write.
var entryColumns = []string{
	"Rank",
	"lemma",
	"original_word",
	"sense_number",
	"total_senses",
	"pos",
	"english_definition",
	"example_vi",
	"example_en",
	"usage_note",
	"Frequency_Score",
	"Is_Compound",
	"Audio_Path",
	"needs_review",
}

// ReadEntries parses an enriched card entry CSV. The header row decides
// column positions; unknown columns land in Extra.
func ReadEntries(r io.Reader) ([]core.CardEntry, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	known := make(map[string]bool, len(entryColumns))
	for _, name := range entryColumns {
		known[name] = true
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	if _, ok := index["lemma"]; !ok {
		return nil, fmt.Errorf("%w: lemma", ErrMissingColumn)
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var entries []core.CardEntry
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		entry := core.CardEntry{
			Lemma:        cell(row, "lemma"),
			OriginalWord: cell(row, "original_word"),
			POS:          cell(row, "pos"),
			Definition:   cell(row, "english_definition"),
			ExampleVI:    cell(row, "example_vi"),
			ExampleEN:    cell(row, "example_en"),
			UsageNote:    cell(row, "usage_note"),
			AudioRef:     cell(row, "Audio_Path"),
			IsCompound:   parseBoolCell(cell(row, "Is_Compound")),
			NeedsReview:  parseBoolCell(cell(row, "needs_review")),
		}
		if entry.Rank, err = parseIntCell(cell(row, "Rank")); err != nil {
			return nil, fmt.Errorf("row %d: bad Rank: %w", line, err)
		}
		if entry.SenseNumber, err = parseIntCell(cell(row, "sense_number")); err != nil {
			return nil, fmt.Errorf("row %d: bad sense_number: %w", line, err)
		}
		if entry.TotalSenses, err = parseIntCell(cell(row, "total_senses")); err != nil {
			return nil, fmt.Errorf("row %d: bad total_senses: %w", line, err)
		}
		if entry.FrequencyScore, err = parseFloatCell(cell(row, "Frequency_Score")); err != nil {
			return nil, fmt.Errorf("row %d: bad Frequency_Score: %w", line, err)
		}

		for i, name := range header {
			if known[name] || i >= len(row) {
				continue
			}
			if entry.Extra == nil {
				entry.Extra = make(map[string]string)
			}
			entry.Extra[name] = row[i]
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ReadEntriesFile opens path and parses it as an entry table.
func ReadEntriesFile(path string) ([]core.CardEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry table: %w", err)
	}
	defer f.Close()

	return ReadEntries(f)
}

// WriteEntries writes the enriched entry table with the canonical columns
// followed by any Extra columns in sorted order.
func WriteEntries(w io.Writer, entries []core.CardEntry) error {
	extras := extraColumns(entries)
	writer := csv.NewWriter(w)

	header := append(append([]string{}, entryColumns...), extras...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Lemma,
			entry.OriginalWord,
			strconv.Itoa(entry.SenseNumber),
			strconv.Itoa(entry.TotalSenses),
			entry.POS,
			entry.Definition,
			entry.ExampleVI,
			entry.ExampleEN,
			entry.UsageNote,
			formatFloatCell(entry.FrequencyScore),
			formatBoolCell(entry.IsCompound),
			entry.AudioRef,
			formatBoolCell(entry.NeedsReview),
		}
		for _, name := range extras {
			row = append(row, entry.Extra[name])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", entry.Lemma, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteEntriesFile writes the entry table to path, creating or
// truncating it.
func WriteEntriesFile(path string, entries []core.CardEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create entry table: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, entries); err != nil {
		return err
	}
	return f.Close()
}

// extraColumns collects the union of Extra keys across entries.
func extraColumns(entries []core.CardEntry) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, entry := range entries {
		for name := range entry.Extra {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
