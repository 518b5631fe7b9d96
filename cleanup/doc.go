// Package cleanup holds the deck refinement passes that run after bulk
// enrichment: POS normalization and deduplication, rare-sense filtering,
// over-split sense merging, usage note annotation, and verification.
// Each pass is independent and operates on the full entry list; passes
// that change a sense group's membership renumber the group afterwards.
package cleanup
