package enrich

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidTarget is returned when the configured entry target is <= 0
	ErrInvalidTarget = errors.New("target entry count must be greater than 0")

	// ErrInvalidBatchSize is returned when the configured batch size is <= 0
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrNoSeedWords is returned when Run is called with an empty seed list
	ErrNoSeedWords = errors.New("no seed words to enrich")
)
