package selection

import (
	"strconv"
	"strings"
)

// allKeywords are the case-insensitive tokens that select every presented
// entry. "todos" is kept for parity with sites commissioned with the
// Spanish-language tooling.
var allKeywords = map[string]bool{
	"all":   true,
	"todos": true,
	"*":     true,
}

// parseToken evaluates one free-text selection token against a listing of
// limit entries (1-based positions).
//
// Recognised forms:
//   - single integer: "7"
//   - inclusive range: "3-9" (lower bound first)
//   - comma-separated list of the above: "1,4,6-8"
//   - select-all keyword: "all", "todos", "*" (case-insensitive)
//
// The token is validated atomically: either every referenced position is
// valid and the full expansion is returned, or a *SyntaxError naming the
// token is returned and nothing is selected.
//
// Returns:
//   - positions: Expanded 1-based positions in written order (nil when all)
//   - all: True when the token is a select-all keyword
//   - err: *SyntaxError for malformed or out-of-range input
func parseToken(token string, limit int) (positions []int, all bool, err error) {
	trimmed := strings.TrimSpace(token)

	if allKeywords[strings.ToLower(trimmed)] {
		return nil, true, nil
	}

	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false, syntaxErrorf(token, "empty list element")
		}

		if strings.Contains(part, "-") {
			expanded, rangeErr := parseRange(token, part, limit)
			if rangeErr != nil {
				return nil, false, rangeErr
			}
			positions = append(positions, expanded...)
			continue
		}

		pos, convErr := strconv.Atoi(part)
		if convErr != nil {
			return nil, false, syntaxErrorf(token, "%q is not a number, range, or keyword", part)
		}
		if pos < 1 || pos > limit {
			return nil, false, syntaxErrorf(token, "position %d is out of range 1-%d", pos, limit)
		}
		positions = append(positions, pos)
	}

	return positions, false, nil
}

// parseRange expands an inclusive "a-b" range.
func parseRange(token, part string, limit int) ([]int, error) {
	bounds := strings.SplitN(part, "-", 2)

	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, syntaxErrorf(token, "range %q has a non-numeric lower bound", part)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, syntaxErrorf(token, "range %q has a non-numeric upper bound", part)
	}

	if lo > hi {
		return nil, syntaxErrorf(token, "range %q is reversed (%d > %d)", part, lo, hi)
	}
	if lo < 1 || hi > limit {
		return nil, syntaxErrorf(token, "range %q is out of range 1-%d", part, limit)
	}

	expanded := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		expanded = append(expanded, p)
	}
	return expanded, nil
}
