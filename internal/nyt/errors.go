package nyt

import "errors"

// Error taxonomy for the single fetch cycle. All of these are fatal to the
// run; nothing is retried.
var (
	// ErrAuthentication marks a rejected session cookie (expired or invalid).
	ErrAuthentication = errors.New("authentication error")
	// ErrNetwork marks a transport failure or timeout.
	ErrNetwork = errors.New("network error")
	// ErrFormat marks a response that is not parseable as the expected shape.
	ErrFormat = errors.New("format error")
)
