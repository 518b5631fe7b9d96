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

package enrich

import "time"

// Config holds configuration for a bulk enrichment run.
type Config struct {
	// TargetEntries is the number of card entries to accumulate before stopping
	TargetEntries int

	// BatchSize is the number of seed words sent to the enricher per request
	BatchSize int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay used to compute backoff between attempts
	RetryDelay time.Duration

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int
}

// DefaultConfig returns a Config with the standard deck-building parameters.
func DefaultConfig() *Config {
	return &Config{
		TargetEntries:  2000,
		BatchSize:      15,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		ReportInterval: 100,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.TargetEntries <= 0 {
		return ErrInvalidTarget
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxAttempts
	}
	return nil
}
