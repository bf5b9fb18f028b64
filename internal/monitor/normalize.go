package monitor

import (
	"strconv"
	"strings"
)

// canonicalValue returns the canonical comparison form of a raw state value.
//
// Change detection must not treat formatting variants of the same reading as
// a transition: the miniserver reports "75" and "75.0" interchangeably for
// the same dimmer level, and some locale configurations emit a comma decimal
// separator ("21,5").
//
// Rules, applied in order:
//  1. Leading/trailing whitespace is trimmed.
//  2. Commas are treated as decimal separators; if the result parses as a
//     float64, the value is numeric and canonicalises to the shortest
//     round-trip decimal form (so "75", "75.0", and "75.00" all become "75",
//     while "75.5" stays distinct).
//  3. Anything that does not parse as a number compares as the trimmed
//     string, byte for byte.
func canonicalValue(raw string) string {
	trimmed := strings.TrimSpace(raw)

	numeric := strings.ReplaceAll(trimmed, ",", ".")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return trimmed
}

// valuesEqual reports whether two raw state values represent the same
// reading under canonical normalization.
func valuesEqual(a, b string) bool {
	return canonicalValue(a) == canonicalValue(b)
}
