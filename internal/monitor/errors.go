package monitor

import "errors"

// Domain-specific errors for the change-detection monitor.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrEmptySelection is returned when a monitor is created with no
	// entities to watch.
	ErrEmptySelection = errors.New("monitor: selection is empty")

	// ErrNoFetcher is returned when no live-state fetch capability is provided.
	ErrNoFetcher = errors.New("monitor: state fetcher is required")

	// ErrNoSink is returned when no record sink is provided.
	ErrNoSink = errors.New("monitor: record sink is required")
)
