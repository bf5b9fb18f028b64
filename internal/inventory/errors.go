package inventory

import "errors"

// Domain-specific errors for inventory parsing.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMalformedInventory is returned when the structure document is
	// missing a required collection after envelope resolution. The rest of
	// the system cannot function without both controls and rooms.
	ErrMalformedInventory = errors.New("inventory: malformed structure document")

	// ErrInvalidJSON is returned when the structure document is not valid JSON.
	ErrInvalidJSON = errors.New("inventory: structure document is not valid JSON")
)
