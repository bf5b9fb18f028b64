package sink

import "errors"

// Domain-specific errors for record sinks.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrRunNotStarted is returned when writing to the SQLite store before
	// BeginRun has created the run row.
	ErrRunNotStarted = errors.New("sink: monitor run not started")

	// ErrNoPrimary is returned when constructing a Fanout without a
	// primary sink.
	ErrNoPrimary = errors.New("sink: fanout requires a primary sink")
)
