package miniserver

import "errors"

// Domain-specific errors for miniserver communication.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrAuthentication is returned when the miniserver rejects the
	// configured credentials. Not retried automatically: the user must fix
	// the username or password.
	ErrAuthentication = errors.New("miniserver: authentication rejected (check username and password)")

	// ErrUnreachable is returned when the miniserver cannot be contacted
	// (connection refused, timeout, DNS failure). Treated as transient by
	// the monitor.
	ErrUnreachable = errors.New("miniserver: unreachable")

	// ErrRequestFailed is returned for unexpected HTTP status codes.
	ErrRequestFailed = errors.New("miniserver: request failed")

	// ErrStateUnavailable is returned when a state reply carries no value.
	ErrStateUnavailable = errors.New("miniserver: state value unavailable")
)
