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

// Package ai provides abstractions for the LLM services used by lexikit.
//
// The enrichment pipeline and the cleanup passes never talk to a completion
// API directly; they depend on the interfaces defined here. This keeps the
// batch/retry/merge logic testable without network access and allows the
// backing service to be swapped.
//
// The package defines five service interfaces, one per LLM-assisted task:
//
//   - SenseEnricher: polysemy detection plus definition/example generation
//   - SenseRater: frequency assessment of individual word senses
//   - MergeAdvisor: advice on collapsing over-split sense groups
//   - UsageAnnotator: practical usage notes for grammatical words
//   - CompoundSuggester: additional compound-word candidates
//
// and a Provider interface that aggregates them behind a single client.
//
// # Implementation Packages
//
//   - ai/gemini: production implementation using the Gemini API via langchaingo
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in ai/gemini return interface types to enforce
// abstraction; the mock package returns concrete types so tests can inject
// behavior and assert call counts.
//
// The completion service gives no guarantee of order preservation,
// completeness, or schema conformance. Implementations are responsible for
// defensive response parsing; callers are responsible for retry policy and
// for validating identifier coverage.
package ai
