package model

import "errors"

// Error taxonomy. Callers match with errors.Is; concrete failures wrap these.
var (
	// ErrConfiguration is returned when a write happens before a destination
	// path has been configured.
	ErrConfiguration = errors.New("tinylog: file path for logging output is not specified")

	// ErrEncoding marks a structured value that could not be rendered as JSON.
	ErrEncoding = errors.New("tinylog: value encoding failed")

	// ErrIO marks a failed directory check or file append.
	ErrIO = errors.New("tinylog: log file i/o failed")
)
