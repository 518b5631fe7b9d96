// Package enrich turns seed words into flashcard entries by querying a
// sense enricher in batches. Each seed word may expand into several card
// entries, one per distinct sense. Batches that fail after all retries
// produce placeholder entries flagged for review, so the pipeline always
// yields at least one entry per seed word it consumes.
package enrich
