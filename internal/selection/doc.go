// Package selection parses free-text range-selection expressions against a
// numbered listing of catalog entries.
//
// The user is shown a fixed, 1-based numbered listing and enters one token
// per prompt turn: a position ("7"), an inclusive range ("3-9"), a comma
// list ("1,4,6-8"), a select-all keyword ("all"), or empty input to finish.
// Tokens are validated atomically and unioned; duplicates are silently
// dropped while first-seen order is preserved.
//
// Session is an explicit state machine (Prompting → Accumulating → Done)
// with no I/O of its own, so the grammar is unit-testable without a
// terminal. Rejected tokens yield a *SyntaxError naming the input; the
// caller reports it and prompts again.
package selection
