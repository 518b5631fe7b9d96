package deck

import "errors"

var (
	// ErrEmptyFile is returned when a CSV file has no header row
	ErrEmptyFile = errors.New("csv file is empty")

	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("required column missing")
)
