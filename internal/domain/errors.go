package domain

import "errors"

var (
	// ErrValidation marks malformed user input. Rejected before any network
	// call, surfaced inline.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup for an entry, alert or document that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrPriceUnavailable marks a historical price lookup that returned no
	// market data for the requested date.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrUpstream marks a failed call to an external service (price API,
	// document store). Retryable by the caller, never fatal.
	ErrUpstream = errors.New("upstream unavailable")
)
