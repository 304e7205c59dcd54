package display

import "errors"

var (
	// ErrNoFetcher is returned when a session is created without a list source
	ErrNoFetcher = errors.New("display session requires a list fetcher")

	// ErrAlreadyStarted is returned when Run is called on a session more than once
	ErrAlreadyStarted = errors.New("display session already started")
)
