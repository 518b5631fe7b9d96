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

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// FailureClass categorizes an enrichment failure for backoff purposes.
type FailureClass int

const (
	// FailureGeneric covers parse errors and anything not otherwise classified
	FailureGeneric FailureClass = iota

	// FailureRateLimit indicates the service rejected the request for quota reasons
	FailureRateLimit

	// FailureTimeout indicates the request did not complete in time
	FailureTimeout
)

// String returns a short label for logging.
func (f FailureClass) String() string {
	switch f {
	case FailureRateLimit:
		return "rate_limit"
	case FailureTimeout:
		return "timeout"
	default:
		return "generic"
	}
}

// ClassifyFailure inspects an error and assigns it a failure class.
// Classification is by message content since provider SDKs surface these
// conditions as opaque wrapped errors.
func ClassifyFailure(err error) FailureClass {
	if err == nil {
		return FailureGeneric
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource exhausted"):
		return FailureRateLimit
	case strings.Contains(msg, "504"),
		strings.Contains(msg, "deadline"),
		strings.Contains(msg, "timed out"),
		strings.Contains(msg, "timeout"):
		return FailureTimeout
	default:
		return FailureGeneric
	}
}

// BackoffDelay computes the wait before retrying a failed attempt.
// attempt is zero-based: the delay after the first failure is attempt 0.
// Rate-limit failures back off linearly but start higher, since quota
// windows reset on a fixed schedule; other failures back off exponentially.
func BackoffDelay(class FailureClass, attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	if class == FailureRateLimit {
		return baseDelay * time.Duration(attempt+2)
	}

	delay := baseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// RetryWithBackoff retries an operation, classifying each failure to choose
// the backoff delay.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay fed to BackoffDelay
// Returns the error from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil // Success
		}

		class := ClassifyFailure(lastErr)
		slog.Debug("operation failed, will retry",
			"attempt", attempt, "maxAttempts", maxAttempts, "class", class, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		delay := BackoffDelay(class, attempt-1, baseDelay)

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Continue to next attempt
		}
	}

	return lastErr
}
