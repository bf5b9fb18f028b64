package selection

import (
	"strings"

	"github.com/nerrad567/loxwatch/internal/classify"
)

// State is the session's position in the selection loop.
type State int

// Session states.
const (
	// StatePrompting means no entry has been accepted yet.
	StatePrompting State = iota

	// StateAccumulating means at least one entry is selected and the
	// session is still accepting tokens.
	StateAccumulating

	// StateDone means the session has terminated (empty input or
	// select-all) and no further tokens are accepted.
	StateDone
)

// Session accumulates a selection of catalog entries from free-text tokens.
//
// The presented listing is fixed at construction: position n (1-based) always
// refers to entries[n-1] for the lifetime of the session, so a re-fetch of
// the inventory requires a new session.
//
// Session is the explicit state machine behind the interactive prompt loop;
// it performs no I/O itself, which keeps the grammar testable without a
// terminal.
type Session struct {
	entries []classify.Entry

	state State
	order []int // accepted positions, first-seen order
	seen  map[int]bool
}

// NewSession creates a selection session over a fixed, ordered listing.
// The listing order is the catalog presentation order.
func NewSession(entries []classify.Entry) *Session {
	return &Session{
		entries: entries,
		state:   StatePrompting,
		seen:    make(map[int]bool),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Offer feeds one prompt turn's input to the session.
//
// Empty input is the explicit terminator: the session moves to StateDone
// without adding anything. A select-all keyword selects every presented
// entry and also terminates. Any other token is parsed by the grammar;
// duplicate positions are silently ignored while first-seen order is kept.
//
// Parameters:
//   - token: Raw user input for this turn
//
// Returns:
//   - added: Number of entries newly added by this token
//   - err: *SyntaxError for rejected tokens; the session state is unchanged
//     and the caller should re-prompt
func (s *Session) Offer(token string) (added int, err error) {
	if s.state == StateDone {
		return 0, syntaxErrorf(token, "selection already terminated")
	}

	if strings.TrimSpace(token) == "" {
		s.state = StateDone
		return 0, nil
	}

	positions, all, err := parseToken(token, len(s.entries))
	if err != nil {
		return 0, err
	}

	if all {
		for p := 1; p <= len(s.entries); p++ {
			added += s.accept(p)
		}
		s.state = StateDone
		return added, nil
	}

	for _, p := range positions {
		added += s.accept(p)
	}

	if len(s.order) > 0 {
		s.state = StateAccumulating
	}
	return added, nil
}

// accept records a position unless already selected. Returns 1 when added.
func (s *Session) accept(pos int) int {
	if s.seen[pos] {
		return 0
	}
	s.seen[pos] = true
	s.order = append(s.order, pos)
	return 1
}

// Selection returns the selected entries in first-seen order.
//
// The returned slice is a copy; the session retains no claim on it. This
// ordering is reused for display and record grouping, so it must be stable.
func (s *Session) Selection() []classify.Entry {
	selected := make([]classify.Entry, 0, len(s.order))
	for _, pos := range s.order {
		selected = append(selected, s.entries[pos-1])
	}
	return selected
}

// Count returns the number of entries selected so far.
func (s *Session) Count() int {
	return len(s.order)
}
