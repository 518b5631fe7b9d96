// Package deck reads and writes the CSV files that carry deck state
// between pipeline stages: the ranked candidate list and the enriched
// card entry table. Columns the current stage does not understand are
// round-tripped untouched, so older and newer tools can share files.
package deck
