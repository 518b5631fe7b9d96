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

package gemini

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/poiesic/lexikit/ai"
)

// stripFences removes a surrounding markdown code fence from a response.
// Models routinely wrap JSON in ```json ... ``` despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// unquotedKeyRe matches an object key that lost its opening quote:
// `{ type": ...` or `, sense_number": ...`.
var unquotedKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z_ ]*)"\s*:`)

// repairJSON fixes common JSON damage in model output, currently keys
// missing their opening quote.
func repairJSON(s string) string {
	return unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
}

// extractArray narrows a response to the outermost JSON array, dropping
// any prose the model wrapped around it. Returns the input unchanged if
// no bracket pair is found.
func extractArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

// fragmentRe matches flat brace-delimited fragments. Nested objects are
// not expected in any of the response contracts.
var fragmentRe = regexp.MustCompile(`\{[^{}]+\}`)

// decodeArray parses a response into a slice of T.
//
// Primary attempt: treat the whole (cleaned) response as one JSON array.
// Recovery attempt: scan the raw text for brace-delimited fragments and
// parse each independently, keeping only the ones the valid func accepts.
// If both tiers produce nothing, ErrUnparseableResponse is returned.
func decodeArray[T any](text string, valid func(T) bool) ([]T, error) {
	cleaned := extractArray(repairJSON(stripFences(text)))

	var out []T
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		if valid == nil {
			return out, nil
		}
		kept := out[:0]
		for _, item := range out {
			if valid(item) {
				kept = append(kept, item)
			}
		}
		if len(kept) > 0 {
			return kept, nil
		}
	}

	// Structured parse failed or yielded nothing usable; salvage what we can.
	var recovered []T
	for _, frag := range fragmentRe.FindAllString(text, -1) {
		var item T
		if err := json.Unmarshal([]byte(repairJSON(frag)), &item); err != nil {
			continue
		}
		if valid != nil && !valid(item) {
			continue
		}
		recovered = append(recovered, item)
	}
	if len(recovered) > 0 {
		return recovered, nil
	}

	return nil, ai.ErrUnparseableResponse
}

// decodeStringArray parses a response expected to be a flat JSON array of
// strings. There is no fragment recovery for this shape; an unparseable
// response is an error.
func decodeStringArray(text string) ([]string, error) {
	cleaned := extractArray(repairJSON(stripFences(text)))

	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, ai.ErrUnparseableResponse
	}
	return out, nil
}
