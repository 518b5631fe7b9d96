package ai

import "errors"

var (
	// ErrMissingAPIKey indicates no API key was configured for the provider.
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrEmptyResponse indicates the service returned no choices or no text.
	ErrEmptyResponse = errors.New("empty response from completion service")

	// ErrUnparseableResponse indicates neither the structured parse nor the
	// fragment-recovery parse salvaged any records from the response.
	ErrUnparseableResponse = errors.New("unparseable response from completion service")
)
