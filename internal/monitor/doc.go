// Package monitor implements the change-detection engine.
//
// Given a fixed selection of controls, a live-state fetch capability, and a
// record sink, the monitor captures one baseline record per control and then
// samples on a fixed interval, emitting a record only when a value actually
// changes. This collapses monitoring volume by orders of magnitude while
// preserving exact transition timing.
//
// # Equality
//
// Values are compared after canonical normalization: numeric strings compare
// by value ("75" equals "75.0", comma decimal separators are accepted) and
// everything else compares as a trimmed string. See canonicalValue for the
// full rules.
//
// # Failure semantics
//
// A failed read for one control during a pass is logged and retried on the
// next interval; it never aborts the loop or affects other controls in the
// same pass. Whole-controller connectivity loss behaves the same way: the
// loop retries indefinitely until cancelled. Only explicit cancellation or
// a failed record write ends a run.
//
// # Concurrency
//
// One sampling pass is ever in flight: fetch all, compare all, emit on
// change, sleep, repeat. Cancellation is observed at the top of each
// iteration only, so a cancelled run never produces a half-written pass.
package monitor
