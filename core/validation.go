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

import "fmt"

// ValidateSeedWord validates a SeedWord according to domain rules.
//
// Validation rules:
//   - Word must not be empty
//   - FrequencyScore must not be negative
//
// NOT validated:
//   - Rank (0 is valid before ranking has been assigned)
//   - TokenCount / IsCompound (derived, may lag the word itself)
func ValidateSeedWord(seed *SeedWord) error {
	if seed == nil {
		return fmt.Errorf("%w: seed is nil", ErrInvalidSeedWord)
	}

	if seed.Word == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSeedWord, ErrEmptyWord)
	}

	if seed.FrequencyScore < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSeedWord, ErrNegativeFrequency)
	}

	return nil
}

// ValidateCardEntry validates a CardEntry according to domain rules.
//
// Validation rules:
//   - Lemma must not be empty
//   - SenseNumber must be within 1..TotalSenses when TotalSenses is set
//
// NOT validated (populated by later passes):
//   - Definition / examples (empty on placeholder entries)
//   - Rank (0 is valid until the final re-rank)
//   - AudioRef / UsageNote (optional)
func ValidateCardEntry(entry *CardEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidCardEntry)
	}

	if entry.Lemma == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCardEntry, ErrEmptyLemma)
	}

	if entry.TotalSenses > 0 {
		if entry.SenseNumber < 1 || entry.SenseNumber > entry.TotalSenses {
			return fmt.Errorf("%w: %w (sense %d of %d)",
				ErrInvalidCardEntry, ErrInvalidSenseNumber, entry.SenseNumber, entry.TotalSenses)
		}
	}

	if entry.FrequencyScore < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCardEntry, ErrNegativeFrequency)
	}

	return nil
}
