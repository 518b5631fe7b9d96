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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSeedWord indicates a SeedWord failed validation.
	ErrInvalidSeedWord = errors.New("invalid seed word")

	// ErrInvalidCardEntry indicates a CardEntry failed validation.
	ErrInvalidCardEntry = errors.New("invalid card entry")

	// ErrEmptyWord indicates the Word field is empty.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrEmptyLemma indicates the Lemma field is empty.
	ErrEmptyLemma = errors.New("lemma cannot be empty")

	// ErrInvalidSenseNumber indicates SenseNumber is out of range for the group.
	ErrInvalidSenseNumber = errors.New("sense number must be between 1 and total senses")

	// ErrNegativeFrequency indicates a negative frequency score.
	ErrNegativeFrequency = errors.New("frequency score cannot be negative")
)
