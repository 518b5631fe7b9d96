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
	"strconv"

	"github.com/poiesic/lexikit/core"
)

// Candidate list column order.
var seedColumns = []string{"Rank", "Word", "Is_Compound", "Token_Count", "Frequency_Score"}

// ReadSeeds parses a candidate word list CSV.
func ReadSeeds(r io.Reader) ([]core.SeedWord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"Word"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var seeds []core.SeedWord
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

		seed := core.SeedWord{Word: cell(row, "Word")}
		if seed.Rank, err = parseIntCell(cell(row, "Rank")); err != nil {
			return nil, fmt.Errorf("row %d: bad Rank: %w", line, err)
		}
		if seed.TokenCount, err = parseIntCell(cell(row, "Token_Count")); err != nil {
			return nil, fmt.Errorf("row %d: bad Token_Count: %w", line, err)
		}
		if seed.FrequencyScore, err = parseFloatCell(cell(row, "Frequency_Score")); err != nil {
			return nil, fmt.Errorf("row %d: bad Frequency_Score: %w", line, err)
		}
		seed.IsCompound = parseBoolCell(cell(row, "Is_Compound"))

		seeds = append(seeds, seed)
	}

	return seeds, nil
}

// ReadSeedsFile opens path and parses it as a candidate list.
func ReadSeedsFile(path string) ([]core.SeedWord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate list: %w", err)
	}
	defer f.Close()

	return ReadSeeds(f)
}

// WriteSeeds writes a candidate word list CSV with a header row.
func WriteSeeds(w io.Writer, seeds []core.SeedWord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(seedColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, seed := range seeds {
		row := []string{
			strconv.Itoa(seed.Rank),
			seed.Word,
			formatBoolCell(seed.IsCompound),
			strconv.Itoa(seed.TokenCount),
			formatFloatCell(seed.FrequencyScore),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", seed.Word, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSeedsFile writes the candidate list to path, creating or
// truncating it.
func WriteSeedsFile(path string, seeds []core.SeedWord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create candidate list: %w", err)
	}
	defer f.Close()

	if err := WriteSeeds(f, seeds); err != nil {
		return err
	}
	return f.Close()
}
